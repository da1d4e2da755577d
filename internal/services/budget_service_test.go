package services

import (
	"testing"

	"presupuesto/internal/models"
	"presupuesto/internal/testutil"
)

func TestCreateTemplate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		template, err := svc.CreateTemplate(user.ID, "2026-08")
		testutil.AssertNoError(t, err)

		if template.ID == 0 {
			t.Fatal("expected non-zero template ID")
		}
		if template.Period != "2026-08" {
			t.Errorf("expected period 2026-08, got %s", template.Period)
		}
	})

	t.Run("duplicate_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTemplate(user.ID, "2026-08")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateTemplate(user.ID, "2026-08")
		testutil.AssertAppError(t, err, "DUPLICATE_TEMPLATE")
	})

	t.Run("same_period_different_users_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTemplate(user1.ID, "2026-08")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateTemplate(user2.ID, "2026-08")
		testutil.AssertNoError(t, err)
	})
}

func TestCreateItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)

		item, err := svc.CreateItem(user.ID, CreateBudgetItemInput{
			TemplateID:     template.ID,
			CategoryID:     category.ID,
			Name:           "Renta",
			DueDate:        "5 de cada mes",
			Budgeted:       400,
			Classification: models.ClassificationFixed,
			Control:        models.ControlNecessary,
		})
		testutil.AssertNoError(t, err)

		if item.Name != "Renta" {
			t.Errorf("expected name Renta, got %s", item.Name)
		}
		if item.Budgeted != 400 {
			t.Errorf("expected budgeted 400, got %v", item.Budgeted)
		}
		// Amounts absent from the request default to zero
		if item.Actual != 0 {
			t.Errorf("expected actual 0, got %v", item.Actual)
		}
		if item.Classification.Name != models.ClassificationFixed {
			t.Errorf("expected classification %s, got %s", models.ClassificationFixed, item.Classification.Name)
		}
		if item.Control.Name != models.ControlNecessary {
			t.Errorf("expected control %s, got %s", models.ControlNecessary, item.Control.Name)
		}
	})

	t.Run("omitted_lookups_get_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)

		item, err := svc.CreateItem(user.ID, CreateBudgetItemInput{
			TemplateID: template.ID,
			CategoryID: category.ID,
			Name:       "Renta",
		})
		testutil.AssertNoError(t, err)

		if item.Classification.Name != models.ClassificationVariable {
			t.Errorf("expected default classification %s, got %s", models.ClassificationVariable, item.Classification.Name)
		}
		if item.Control.Name != models.ControlNecessary {
			t.Errorf("expected default control %s, got %s", models.ControlNecessary, item.Control.Name)
		}
	})

	t.Run("unknown_classification_aborts_insert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)

		_, err := svc.CreateItem(user.ID, CreateBudgetItemInput{
			TemplateID:     template.ID,
			CategoryID:     category.ID,
			Name:           "Renta",
			Classification: "Inexistente",
			Control:        models.ControlNecessary,
		})
		testutil.AssertAppError(t, err, "LOOKUP_FAILED")

		var count int64
		db.Model(&models.BudgetItem{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no partial insert after lookup failure, found %d items", count)
		}
	})

	t.Run("unknown_control_aborts_insert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)

		_, err := svc.CreateItem(user.ID, CreateBudgetItemInput{
			TemplateID:     template.ID,
			CategoryID:     category.ID,
			Name:           "Renta",
			Classification: models.ClassificationFixed,
			Control:        "Opcional",
		})
		testutil.AssertAppError(t, err, "LOOKUP_FAILED")
	})

	t.Run("foreign_template_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, owner.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, intruder.ID)

		_, err := svc.CreateItem(intruder.ID, CreateBudgetItemInput{
			TemplateID:     template.ID,
			CategoryID:     category.ID,
			Name:           "Renta",
			Classification: models.ClassificationFixed,
			Control:        models.ControlNecessary,
		})
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})

	t.Run("foreign_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, owner.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, other.ID)

		_, err := svc.CreateItem(owner.ID, CreateBudgetItemInput{
			TemplateID:     template.ID,
			CategoryID:     category.ID,
			Name:           "Renta",
			Classification: models.ClassificationFixed,
			Control:        models.ControlNecessary,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("partial_patch_leaves_other_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)

		item, err := svc.CreateItem(user.ID, CreateBudgetItemInput{
			TemplateID:     template.ID,
			CategoryID:     category.ID,
			Name:           "Renta",
			Budgeted:       400,
			Actual:         0,
			Classification: models.ClassificationFixed,
			Control:        models.ControlNecessary,
		})
		testutil.AssertNoError(t, err)

		budgeted := 500.0
		updated, err := svc.UpdateItem(user.ID, item.ID, BudgetItemPatch{Budgeted: &budgeted})
		testutil.AssertNoError(t, err)

		if updated.Budgeted != 500 {
			t.Errorf("expected budgeted 500, got %v", updated.Budgeted)
		}
		if updated.Name != "Renta" {
			t.Errorf("expected name to stay Renta, got %s", updated.Name)
		}
		if updated.Actual != 0 {
			t.Errorf("expected actual to stay 0, got %v", updated.Actual)
		}
	})

	t.Run("empty_patch_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)
		item := testutil.CreateTestBudgetItem(t, db, user.ID, template.ID, category.ID, 100, 40)

		updated, err := svc.UpdateItem(user.ID, item.ID, BudgetItemPatch{})
		testutil.AssertNoError(t, err)

		if updated.Budgeted != 100 || updated.Actual != 40 {
			t.Errorf("expected amounts unchanged, got budgeted=%v actual=%v", updated.Budgeted, updated.Actual)
		}
	})

	t.Run("reclassify_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)
		item := testutil.CreateTestBudgetItem(t, db, user.ID, template.ID, category.ID, 100, 0)

		variable := models.ClassificationVariable
		updated, err := svc.UpdateItem(user.ID, item.ID, BudgetItemPatch{Classification: &variable})
		testutil.AssertNoError(t, err)

		if updated.Classification.Name != models.ClassificationVariable {
			t.Errorf("expected classification %s, got %s", models.ClassificationVariable, updated.Classification.Name)
		}
	})

	t.Run("unknown_lookup_aborts_whole_patch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db).(*budgetService)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)
		item := testutil.CreateTestBudgetItem(t, db, user.ID, template.ID, category.ID, 100, 0)

		budgeted := 900.0
		bogus := "Inexistente"
		_, err := svc.UpdateItem(user.ID, item.ID, BudgetItemPatch{
			Budgeted:       &budgeted,
			Classification: &bogus,
		})
		testutil.AssertAppError(t, err, "LOOKUP_FAILED")

		// No partial mutation applied
		unchanged, err := svc.getItem(user.ID, item.ID)
		testutil.AssertNoError(t, err)
		if unchanged.Budgeted != 100 {
			t.Errorf("expected budgeted to stay 100 after failed patch, got %v", unchanged.Budgeted)
		}
	})

	t.Run("foreign_item_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, owner.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, owner.ID)
		item := testutil.CreateTestBudgetItem(t, db, owner.ID, template.ID, category.ID, 100, 0)

		budgeted := 1.0
		_, err := svc.UpdateItem(intruder.ID, item.ID, BudgetItemPatch{Budgeted: &budgeted})
		testutil.AssertAppError(t, err, "BUDGET_ITEM_NOT_FOUND")
	})
}

func TestBuildItemUpdates(t *testing.T) {
	t.Run("omitted_fields_not_in_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db).(*budgetService)
		user := testutil.CreateTestUser(t, db)

		budgeted := 500.0
		updates, err := svc.buildItemUpdates(user.ID, BudgetItemPatch{Budgeted: &budgeted})
		testutil.AssertNoError(t, err)

		if len(updates) != 1 {
			t.Fatalf("expected exactly 1 update, got %d: %v", len(updates), updates)
		}
		if _, ok := updates["budgeted"]; !ok {
			t.Error("expected budgeted in update set")
		}
		for _, col := range []string{"name", "due_date", "actual", "category_id", "classification_id", "control_id"} {
			if _, ok := updates[col]; ok {
				t.Errorf("column %s must not appear for an omitted field", col)
			}
		}
	})
}

func TestDeleteItem(t *testing.T) {
	t.Run("deletes_owned_item", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db).(*budgetService)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)
		item := testutil.CreateTestBudgetItem(t, db, user.ID, template.ID, category.ID, 100, 0)

		testutil.AssertNoError(t, svc.DeleteItem(user.ID, item.ID))

		_, err := svc.getItem(user.ID, item.ID)
		testutil.AssertAppError(t, err, "BUDGET_ITEM_NOT_FOUND")
	})

	t.Run("absent_item_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteItem(user.ID, 99999)
		testutil.AssertAppError(t, err, "BUDGET_ITEM_NOT_FOUND")
	})

	t.Run("foreign_item_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db).(*budgetService)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, owner.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, owner.ID)
		item := testutil.CreateTestBudgetItem(t, db, owner.ID, template.ID, category.ID, 100, 0)

		err := svc.DeleteItem(intruder.ID, item.ID)
		testutil.AssertAppError(t, err, "BUDGET_ITEM_NOT_FOUND")

		// Owner's row must be untouched
		if _, err := svc.getItem(owner.ID, item.ID); err != nil {
			t.Errorf("expected owner's item to survive, got %v", err)
		}
	})
}

func TestGetTemplateItems(t *testing.T) {
	t.Run("summary_recomputed_from_items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		template := testutil.CreateTestTemplate(t, db, user.ID, "2026-08")
		category := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestBudgetItem(t, db, user.ID, template.ID, category.ID, 400, 450)
		testutil.CreateTestBudgetItem(t, db, user.ID, template.ID, category.ID, 100, 50)

		items, summary, err := svc.GetTemplateItems(user.ID, "2026-08")
		testutil.AssertNoError(t, err)

		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if summary.TotalBudgeted != 500 {
			t.Errorf("expected total budgeted 500, got %v", summary.TotalBudgeted)
		}
		if summary.TotalActual != 500 {
			t.Errorf("expected total actual 500, got %v", summary.TotalActual)
		}
		if summary.Remaining != 0 {
			t.Errorf("expected remaining 0, got %v", summary.Remaining)
		}
		if summary.PercentSpent != 100 {
			t.Errorf("expected percent spent 100, got %v", summary.PercentSpent)
		}
		if summary.OverBudgetCount != 1 {
			t.Errorf("expected 1 over-budget item, got %d", summary.OverBudgetCount)
		}
	})

	t.Run("missing_template_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.GetTemplateItems(user.ID, "2026-08")
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})

	t.Run("zero_budget_zero_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTemplate(t, db, user.ID, "2026-08")

		_, summary, err := svc.GetTemplateItems(user.ID, "2026-08")
		testutil.AssertNoError(t, err)
		if summary.PercentSpent != 0 {
			t.Errorf("expected percent spent 0 for empty template, got %v", summary.PercentSpent)
		}
	})
}
