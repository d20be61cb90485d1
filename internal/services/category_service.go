package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category in the scope's household.
func (s *categoryService) CreateCategory(scope Scope, name string, categoryType models.CategoryType, color string) (*models.Category, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType != models.CategoryTypeExpense && categoryType != models.CategoryTypeIncome {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be expense or income")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("household_id = ? AND name = ?", scope.HouseholdID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	category := &models.Category{
		HouseholdID: scope.HouseholdID,
		Name:        name,
		Type:        categoryType,
		Color:       color,
		IsActive:    true,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories lists the household's categories, optionally active ones only.
func (s *categoryService) GetCategories(scope Scope, activeOnly bool) ([]models.Category, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	q := s.db.Where("household_id = ?", scope.HouseholdID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category within the scope's household.
func (s *categoryService) GetCategoryByID(scope Scope, categoryID string) (*models.Category, error) {
	if !scope.Provisioned() {
		return nil, apperrors.ErrNoHousehold
	}

	var category models.Category
	if err := s.db.Where("id = ? AND household_id = ?", categoryID, scope.HouseholdID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames, recolors and/or toggles a category.
func (s *categoryService) UpdateCategory(scope Scope, categoryID, name, color string, isActive *bool) (*models.Category, error) {
	category, err := s.GetCategoryByID(scope, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory removes a category that no expense references.
func (s *categoryService) DeleteCategory(scope Scope, categoryID string) error {
	category, err := s.GetCategoryByID(scope, categoryID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.Expense{}).Where("category_id = ?", categoryID).Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
