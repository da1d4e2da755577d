package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Names are unique per user among
// active categories; the comparison is exact-match and case-sensitive. The
// pre-check short-circuits with a conflict, and a storage-level duplicate-key
// violation maps to the same conflict if the check-then-insert races.
func (s *categoryService) CreateCategory(userID uint, name, description, icon, color string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND is_active = ?", userID, name, true).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:      userID,
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves all active categories for a user.
func (s *categoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
