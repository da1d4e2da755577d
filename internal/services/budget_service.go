package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
)

// budgetService handles monthly templates and budget items.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateTemplate creates a monthly template for the given period.
func (s *budgetService) CreateTemplate(userID uint, period string) (*models.MonthlyTemplate, error) {
	var count int64
	if err := s.db.Model(&models.MonthlyTemplate{}).
		Where("user_id = ? AND period = ?", userID, period).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateTemplate
	}

	template := &models.MonthlyTemplate{UserID: userID, Period: period}
	if err := s.db.Create(template).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateTemplate
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return template, nil
}

// GetTemplateItems returns the budget items of the user's template for a
// period, together with aggregates recomputed from the current item list.
func (s *budgetService) GetTemplateItems(userID uint, period string) ([]models.BudgetItem, *TemplateSummary, error) {
	var template models.MonthlyTemplate
	if err := s.db.Where("user_id = ? AND period = ?", userID, period).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrTemplateNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.BudgetItem
	if err := s.db.
		Preload("Category").Preload("Classification").Preload("Control").
		Where("user_id = ? AND template_id = ?", userID, template.ID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return items, summarize(items), nil
}

// summarize derives template aggregates from an item list.
func summarize(items []models.BudgetItem) *TemplateSummary {
	summary := &TemplateSummary{ItemCount: len(items)}
	for _, item := range items {
		summary.TotalBudgeted += item.Budgeted
		summary.TotalActual += item.Actual
		if item.Actual > item.Budgeted {
			summary.OverBudgetCount++
		}
	}
	summary.Remaining = summary.TotalBudgeted - summary.TotalActual
	if summary.TotalBudgeted > 0 {
		summary.PercentSpent = summary.TotalActual / summary.TotalBudgeted * 100
	}
	return summary
}

// resolveClassification maps a classification name to its identifier.
func (s *budgetService) resolveClassification(name string) (uint, error) {
	var c models.Classification
	if err := s.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.WithMessage(apperrors.ErrLookupFailed, fmt.Sprintf("classification %q not found", name))
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return c.ID, nil
}

// resolveControl maps a control type name to its identifier.
func (s *budgetService) resolveControl(name string) (uint, error) {
	var c models.ControlType
	if err := s.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.WithMessage(apperrors.ErrLookupFailed, fmt.Sprintf("control type %q not found", name))
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return c.ID, nil
}

// CreateItem creates a budget item inside one of the user's templates. All
// lookups must resolve before the insert; a failed lookup aborts the whole
// operation and reports which lookup failed.
func (s *budgetService) CreateItem(userID uint, input CreateBudgetItemInput) (*models.BudgetItem, error) {
	// Verify template exists and belongs to user
	var template models.MonthlyTemplate
	if err := s.db.Where("id = ? AND user_id = ?", input.TemplateID, userID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Verify category exists and belongs to user
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", input.CategoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	classification := input.Classification
	if classification == "" {
		classification = models.ClassificationVariable
	}
	control := input.Control
	if control == "" {
		control = models.ControlNecessary
	}

	classificationID, err := s.resolveClassification(classification)
	if err != nil {
		return nil, err
	}
	controlID, err := s.resolveControl(control)
	if err != nil {
		return nil, err
	}

	item := &models.BudgetItem{
		UserID:           userID,
		TemplateID:       input.TemplateID,
		CategoryID:       input.CategoryID,
		Name:             input.Name,
		DueDate:          input.DueDate,
		Budgeted:         input.Budgeted,
		Actual:           input.Actual,
		ClassificationID: classificationID,
		ControlID:        controlID,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.getItem(userID, item.ID)
}

// getItem loads a budget item with its lookups, scoped to the owner.
func (s *budgetService) getItem(userID, itemID uint) (*models.BudgetItem, error) {
	var item models.BudgetItem
	if err := s.db.
		Preload("Category").Preload("Classification").Preload("Control").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// buildItemUpdates translates a patch into a column update map. Only fields
// explicitly present in the patch appear; absent fields never overwrite
// stored values.
func (s *budgetService) buildItemUpdates(userID uint, patch BudgetItemPatch) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Budgeted != nil {
		updates["budgeted"] = *patch.Budgeted
	}
	if patch.Actual != nil {
		updates["actual"] = *patch.Actual
	}
	if patch.CategoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *patch.CategoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Classification != nil {
		id, err := s.resolveClassification(*patch.Classification)
		if err != nil {
			return nil, err
		}
		updates["classification_id"] = id
	}
	if patch.Control != nil {
		id, err := s.resolveControl(*patch.Control)
		if err != nil {
			return nil, err
		}
		updates["control_id"] = id
	}

	return updates, nil
}

// UpdateItem applies a partial patch to a budget item owned by the user.
func (s *budgetService) UpdateItem(userID, itemID uint, patch BudgetItemPatch) (*models.BudgetItem, error) {
	item, err := s.getItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	updates, err := s.buildItemUpdates(userID, patch)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.getItem(userID, itemID)
}

// DeleteItem soft-deletes a budget item owned by the user. Deleting an
// absent row, or one owned by another user, reports not-found.
func (s *budgetService) DeleteItem(userID, itemID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.BudgetItem{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetItemNotFound
	}
	return nil
}
