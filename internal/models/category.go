package models

// Category represents a budget/expense category. Names are unique per user
// among active categories; the check is exact-match and case-sensitive.
type Category struct {
	Base
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	BudgetItems []BudgetItem `gorm:"foreignKey:CategoryID" json:"budget_items,omitempty"`
}
