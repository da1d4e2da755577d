// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"presupuesto/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.User{},
	&models.Category{},
	&models.MonthlyTemplate{},
	&models.Classification{},
	&models.ControlType{},
	&models.BudgetItem{},
	&models.Transaction{},
	&models.ElectronicInvoice{},
	&models.AuditLog{},
}

// SetupTestDB creates an in-memory SQLite database with all models migrated
// and the classification/control lookup tables seeded.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	SeedLookups(t, db)
	return db
}

// SeedLookups inserts the classification and control lookup rows that the
// SQL migrations seed in production.
func SeedLookups(t *testing.T, db *gorm.DB) {
	t.Helper()

	classifications := []models.Classification{
		{Name: models.ClassificationFixed},
		{Name: models.ClassificationVariable},
		{Name: models.ClassificationDiscretionary},
	}
	for i := range classifications {
		if err := db.FirstOrCreate(&classifications[i], models.Classification{Name: classifications[i].Name}).Error; err != nil {
			t.Fatalf("failed to seed classification %q: %v", classifications[i].Name, err)
		}
	}

	controls := []models.ControlType{
		{Name: models.ControlNecessary},
		{Name: models.ControlDiscretionary},
	}
	for i := range controls {
		if err := db.FirstOrCreate(&controls[i], models.ControlType{Name: controls[i].Name}).Error; err != nil {
			t.Fatalf("failed to seed control type %q: %v", controls[i].Name, err)
		}
	}
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
