package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilters narrows a product listing. Nil fields do not filter;
// set fields are combined with AND.
type ProductFilters struct {
	CategoryID *uint
	Featured   *bool
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetAllProducts returns the bare product rows, without their category.
func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Order("products.id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, filters ProductFilters) ([]Product, error) {
	var products []Product

	query := r.db.WithContext(ctx).
		Model(&Product{}).
		Preload("Category")

	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.Featured != nil {
		query = query.Where("products.is_featured = ?", *filters.Featured)
	}

	if err := query.Order("products.id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

// CreateProduct inserts p. The referenced category must exist.
func (r *ProductsRepository) CreateProduct(ctx context.Context, p *Product) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// ReplaceProduct overwrites the name, description, price and stock quantity of
// product id. Other columns keep their stored values.
func (r *ProductsRepository) ReplaceProduct(ctx context.Context, id uint, in Product) (*Product, error) {
	var existing Product
	db := r.db.WithContext(ctx)
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Price = in.Price
	existing.StockQuantity = in.StockQuantity

	if err := db.Model(&existing).
		Select("Name", "Description", "Price", "StockQuantity").
		Updates(&existing).Error; err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return &existing, nil
}

// DeleteProduct removes product id. Cart items referencing it go with it.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
