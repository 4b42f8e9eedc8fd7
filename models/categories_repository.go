package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryInUse is returned when deleting a category that still has products.
	ErrCategoryInUse = errors.New("category has products")
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// DeleteCategory removes category id. It fails with ErrCategoryInUse while any
// product references the category; the foreign key enforces the same rule.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	var n int64
	if err := db.Model(&Product{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("count products of category %d: %w", id, err)
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	res := db.Delete(&Category{}, id)
	if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
		return ErrCategoryInUse
	}
	if res.Error != nil {
		return fmt.Errorf("delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
