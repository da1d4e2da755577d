package models

// MonthlyTemplate groups a user's budget items for one YYYY-MM period.
// One template per user and period.
type MonthlyTemplate struct {
	Base
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_templates_user_period" json:"user_id"`
	Period string `gorm:"size:7;not null;uniqueIndex:idx_templates_user_period" json:"period"`

	// Relationships
	Items []BudgetItem `gorm:"foreignKey:TemplateID" json:"items,omitempty"`
}
