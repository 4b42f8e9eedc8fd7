// Package dto defines the flat transfer records returned by the API.
//
// Records embed what a frontend needs to render (a product carries its
// category, a cart item carries its product) but never point back to their
// parent, so the serialized graph has no cycles.
package dto

import (
	"time"

	"github.com/minimart/storefront/models"
)

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Product struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	IsFeatured    bool      `json:"isFeatured"`
	CategoryID    uint      `json:"categoryId"`
	CreatedAt     time.Time `json:"createdAt"`
	Category      Category  `json:"category"`
}

type CartItem struct {
	ID        uint      `json:"id"`
	SessionID string    `json:"sessionId"`
	ProductID uint      `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	Product   Product   `json:"product"`
}

func FromCategory(c models.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
	}
}

// FromProduct expects p.Category to be loaded.
func FromProduct(p models.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		IsFeatured:    p.IsFeatured,
		CategoryID:    p.CategoryID,
		CreatedAt:     p.CreatedAt,
		Category:      FromCategory(p.Category),
	}
}

// FromCartItem expects the item's product and its category to be loaded.
func FromCartItem(i models.CartItem) CartItem {
	return CartItem{
		ID:        i.ID,
		SessionID: i.SessionID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		CreatedAt: i.CreatedAt,
		Product:   FromProduct(i.Product),
	}
}

func FromCategories(cs []models.Category) []Category {
	out := make([]Category, len(cs))
	for i, c := range cs {
		out[i] = FromCategory(c)
	}
	return out
}

func FromProducts(ps []models.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = FromProduct(p)
	}
	return out
}

func FromCartItems(items []models.CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = FromCartItem(item)
	}
	return out
}
