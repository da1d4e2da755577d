package services

import (
	"presupuesto/internal/models"
	"presupuesto/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	GetSelectedPeriod(userID uint) (string, error)
	SetSelectedPeriod(userID uint, period string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name, description, icon, color string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
}

// CreateBudgetItemInput is the validated input for creating a budget item.
// Classification and Control carry the human-readable lookup names; the
// service resolves them to backend identifiers before inserting.
type CreateBudgetItemInput struct {
	TemplateID     uint
	CategoryID     uint
	Name           string
	DueDate        string
	Budgeted       float64
	Actual         float64
	Classification string
	Control        string
}

// BudgetItemPatch holds the fields of a partial budget item update. Nil
// fields were absent from the request and must not touch stored values.
type BudgetItemPatch struct {
	Name           *string
	DueDate        *string
	Budgeted       *float64
	Actual         *float64
	CategoryID     *uint
	Classification *string
	Control        *string
}

// TemplateSummary holds aggregates derived from a template's items. It is
// recomputed from the current item list on every read; nothing is cached.
type TemplateSummary struct {
	TotalBudgeted   float64 `json:"total_budgeted"`
	TotalActual     float64 `json:"total_actual"`
	Remaining       float64 `json:"remaining"`
	PercentSpent    float64 `json:"percent_spent"`
	OverBudgetCount int     `json:"over_budget_count"`
	ItemCount       int     `json:"item_count"`
}

// BudgetServicer defines the contract for monthly templates and budget items.
type BudgetServicer interface {
	CreateTemplate(userID uint, period string) (*models.MonthlyTemplate, error)
	GetTemplateItems(userID uint, period string) ([]models.BudgetItem, *TemplateSummary, error)
	CreateItem(userID uint, input CreateBudgetItemInput) (*models.BudgetItem, error)
	UpdateItem(userID, itemID uint, patch BudgetItemPatch) (*models.BudgetItem, error)
	DeleteItem(userID, itemID uint) error
}

// CreateExpenseInput is the validated input for creating an expense.
type CreateExpenseInput struct {
	Name            string
	Amount          float64
	TransactionDate string
	Category        string
	Account         string
	Place           string
}

// ExpensePatch holds the fields of a partial expense update. Nil fields were
// absent from the request and must not touch stored values.
type ExpensePatch struct {
	Name            *string
	Amount          *float64
	TransactionDate *string
	Category        *string
	Account         *string
	Place           *string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, input CreateExpenseInput) (*models.Transaction, error)
	GetUserExpenses(userID uint, monthYear string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], float64, error)
	UpdateExpense(userID, expenseID uint, patch ExpensePatch) (*models.Transaction, error)
	DeleteExpense(userID, expenseID uint) error
}

// CreateInvoiceInput is the validated input for registering an electronic invoice.
type CreateInvoiceInput struct {
	CUFE           string
	SupplierName   string
	SupplierTaxID  string
	InvoiceDate    string
	TotalAmount    float64
	ExtractedData  map[string]interface{}
	SourceDocument string
}

// InvoiceFilter holds optional filter parameters for listing invoices.
type InvoiceFilter struct {
	FromDate *string
	ToDate   *string
	Supplier *string
}

// InvoiceSummary aggregates the invoices matching a list query.
type InvoiceSummary struct {
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// InvoiceServicer defines the contract for electronic invoice business logic.
type InvoiceServicer interface {
	CreateInvoice(userID uint, input CreateInvoiceInput) (*models.ElectronicInvoice, error)
	ListInvoices(userID uint, filter InvoiceFilter, page pagination.PageRequest) (*pagination.PageResponse[models.ElectronicInvoice], *InvoiceSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
