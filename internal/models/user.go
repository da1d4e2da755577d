package models

import "time"

// User represents the user model in the database. Every domain row is scoped
// to its owning user; services must filter by user_id on each query.
type User struct {
	Base
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	// SelectedPeriod is the user's currently selected YYYY-MM reporting
	// period. Empty means "use the current real-world period".
	SelectedPeriod string `gorm:"size:7" json:"selected_period,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Categories []Category          `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Templates  []MonthlyTemplate   `gorm:"foreignKey:UserID" json:"templates,omitempty"`
	Expenses   []Transaction       `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Invoices   []ElectronicInvoice `gorm:"foreignKey:UserID" json:"invoices,omitempty"`
}
