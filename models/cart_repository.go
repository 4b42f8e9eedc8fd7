package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCartItemNotFound is returned when a cart item does not exist or belongs
// to another session.
var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetBySession returns the items of a session with product and category loaded.
func (r *CartRepository) GetBySession(ctx context.Context, sessionID string) ([]CartItem, error) {
	var items []CartItem
	if err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

// FindByProduct returns the item of a session for productID.
func (r *CartRepository) FindByProduct(ctx context.Context, sessionID string, productID uint) (*CartItem, error) {
	var item CartItem
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return &item, nil
}

// GetItem returns item itemID if it belongs to sessionID.
func (r *CartRepository) GetItem(ctx context.Context, sessionID string, itemID uint) (*CartItem, error) {
	var item CartItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("get cart item %d: %w", itemID, err)
	}
	return &item, nil
}

func (r *CartRepository) CreateItem(ctx context.Context, item *CartItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, item *CartItem, quantity int) error {
	if err := r.db.WithContext(ctx).
		Model(item).
		Update("quantity", quantity).Error; err != nil {
		return fmt.Errorf("update cart item %d: %w", item.ID, err)
	}
	item.Quantity = quantity
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, item *CartItem) error {
	if err := r.db.WithContext(ctx).Delete(&CartItem{}, item.ID).Error; err != nil {
		return fmt.Errorf("delete cart item %d: %w", item.ID, err)
	}
	return nil
}

// ClearSession deletes every item of sessionID. An empty cart is not an error.
func (r *CartRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
