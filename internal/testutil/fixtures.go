package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"presupuesto/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates an active category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:   userID,
		Name:     fmt.Sprintf("Categoria %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTemplate creates a monthly template for the given period.
func CreateTestTemplate(t *testing.T, db *gorm.DB, userID uint, period string) *models.MonthlyTemplate {
	t.Helper()

	template := &models.MonthlyTemplate{UserID: userID, Period: period}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return template
}

// LookupClassificationID returns the ID of a seeded classification by name.
func LookupClassificationID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	var c models.Classification
	if err := db.Where("name = ?", name).First(&c).Error; err != nil {
		t.Fatalf("failed to look up classification %q: %v", name, err)
	}
	return c.ID
}

// LookupControlID returns the ID of a seeded control type by name.
func LookupControlID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	var c models.ControlType
	if err := db.Where("name = ?", name).First(&c).Error; err != nil {
		t.Fatalf("failed to look up control type %q: %v", name, err)
	}
	return c.ID
}

// CreateTestBudgetItem creates a budget item with the given amounts.
func CreateTestBudgetItem(t *testing.T, db *gorm.DB, userID, templateID, categoryID uint, budgeted, actual float64) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		UserID:           userID,
		TemplateID:       templateID,
		CategoryID:       categoryID,
		Name:             fmt.Sprintf("Item %d", nextID()),
		Budgeted:         budgeted,
		Actual:           actual,
		ClassificationID: LookupClassificationID(t, db, models.ClassificationFixed),
		ControlID:        LookupControlID(t, db, models.ControlNecessary),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test budget item: %v", err)
	}
	return item
}

// CreateTestExpense creates an expense on the given ISO date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount float64, isoDate string) *models.Transaction {
	t.Helper()

	monthYear := ""
	if len(isoDate) >= 7 {
		monthYear = isoDate[:7]
	}
	expense := &models.Transaction{
		UserID:          userID,
		Name:            fmt.Sprintf("Gasto %d", nextID()),
		Amount:          amount,
		TransactionDate: isoDate,
		MonthYear:       monthYear,
		Category:        "Mercado",
		Account:         "Bancolombia",
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestInvoice creates an electronic invoice with the given CUFE.
func CreateTestInvoice(t *testing.T, db *gorm.DB, userID uint, cufe string, total float64) *models.ElectronicInvoice {
	t.Helper()

	invoice := &models.ElectronicInvoice{
		UserID:       userID,
		CUFE:         cufe,
		SupplierName: fmt.Sprintf("Proveedor %d", nextID()),
		InvoiceDate:  "2026-08-01",
		TotalAmount:  total,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("failed to create test invoice: %v", err)
	}
	return invoice
}
