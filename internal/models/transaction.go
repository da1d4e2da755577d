package models

// Transaction represents a single expense. The transaction date is stored as
// an ISO YYYY-MM-DD string; MonthYear is always its first seven characters
// and is maintained by the service on every write.
type Transaction struct {
	Base
	UserID          uint    `gorm:"not null;index" json:"user_id"`
	Name            string  `gorm:"not null" json:"name"`
	Amount          float64 `gorm:"not null;default:0" json:"amount"`
	TransactionDate string  `gorm:"size:10;not null" json:"transaction_date"`
	MonthYear       string  `gorm:"size:7;not null;index" json:"month_year"`
	Category        string  `gorm:"not null" json:"category"`
	Account         string  `gorm:"not null" json:"account"`
	Place           string  `json:"place"`
}
