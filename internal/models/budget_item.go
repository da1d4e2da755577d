package models

// BudgetItem is one line of a monthly budget template: what the user plans
// to spend (budgeted) vs what they actually spent (actual) on a named item.
// Amounts default to zero when absent from the creating request.
type BudgetItem struct {
	Base
	UserID           uint    `gorm:"not null;index" json:"user_id"`
	TemplateID       uint    `gorm:"not null;index" json:"template_id"`
	CategoryID       uint    `gorm:"not null" json:"category_id"`
	Name             string  `gorm:"not null" json:"name"`
	DueDate          string  `gorm:"size:50" json:"due_date"`
	Budgeted         float64 `gorm:"not null;default:0" json:"budgeted"`
	Actual           float64 `gorm:"not null;default:0" json:"actual"`
	ClassificationID uint    `gorm:"not null" json:"classification_id"`
	ControlID        uint    `gorm:"not null" json:"control_id"`

	// Relationships
	Template       MonthlyTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Category       Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Classification Classification  `gorm:"foreignKey:ClassificationID" json:"classification,omitempty"`
	Control        ControlType     `gorm:"foreignKey:ControlID" json:"control,omitempty"`
}
