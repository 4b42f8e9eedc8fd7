package database

import (
	"fmt"

	"github.com/minimart/storefront/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	image       string
	featured    bool
}

type seedCategory struct {
	name        string
	description string
	image       string
	products    []seedProduct
}

var seedCatalog = []seedCategory{
	{
		name:        "Fruits",
		description: "Fresh seasonal fruits",
		image:       "https://images.unsplash.com/photo-1610832958506-aa56368176cf?w=400",
		products: []seedProduct{
			{"Apple", "Fresh red apples", "1.99", 100, "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=400", true},
			{"Banana", "Ripe yellow bananas", "0.99", 50, "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=400", false},
			{"Orange", "Sweet oranges", "2.49", 75, "https://images.unsplash.com/photo-1547514701-42782101795e?w=400", true},
		},
	},
	{
		name:        "Vegetables",
		description: "Crisp vegetables from local farms",
		image:       "https://images.unsplash.com/photo-1540420773420-3366772f4999?w=400",
		products: []seedProduct{
			{"Carrot", "Organic carrots, 1 lb bag", "1.29", 80, "https://images.unsplash.com/photo-1598170845058-32b9d6a5da37?w=400", false},
			{"Broccoli", "Green broccoli crowns", "2.19", 40, "https://images.unsplash.com/photo-1459411621453-7b03977f4bfc?w=400", true},
			{"Tomato", "Vine-ripened tomatoes", "3.49", 60, "https://images.unsplash.com/photo-1546094096-0df4bcaaa337?w=400", false},
		},
	},
	{
		name:        "Dairy & Eggs",
		description: "Milk, cheese, yogurt and eggs",
		image:       "https://images.unsplash.com/photo-1628088062854-d1870b4553da?w=400",
		products: []seedProduct{
			{"Whole Milk", "One gallon of whole milk", "3.99", 30, "https://images.unsplash.com/photo-1563636619-e9143da7973b?w=400", true},
			{"Cheddar Cheese", "Aged sharp cheddar, 8 oz", "4.59", 25, "https://images.unsplash.com/photo-1618164436241-4473940d1f5c?w=400", false},
			{"Free-Range Eggs", "A dozen large brown eggs", "5.29", 45, "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=400", false},
		},
	},
	{
		name:        "Bakery",
		description: "Bread and pastries baked daily",
		image:       "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400",
		products: []seedProduct{
			{"Sourdough Bread", "Crusty sourdough loaf", "4.99", 20, "https://images.unsplash.com/photo-1585478259715-876acc5be8eb?w=400", true},
			{"Croissant", "Butter croissant", "1.79", 35, "https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400", false},
			{"Bagel", "Everything bagel", "1.19", 40, "https://images.unsplash.com/photo-1585445490387-f47934b73b54?w=400", false},
		},
	},
}

// Seed inserts the starter catalog when the categories table is empty.
// It reports whether anything was inserted.
func Seed(db *gorm.DB) (bool, error) {
	var n int64
	if err := db.Model(&models.Category{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, sc := range seedCatalog {
			category := models.Category{
				Name:        sc.name,
				Description: ptr(sc.description),
				ImageURL:    ptr(sc.image),
			}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", sc.name, err)
			}

			for _, sp := range sc.products {
				product := models.Product{
					Name:          sp.name,
					Description:   ptr(sp.description),
					Price:         decimal.RequireFromString(sp.price),
					StockQuantity: sp.stock,
					ImageURL:      ptr(sp.image),
					IsFeatured:    sp.featured,
					CategoryID:    category.ID,
				}
				if err := tx.Omit("Category").Create(&product).Error; err != nil {
					return fmt.Errorf("seed product %q: %w", sp.name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func ptr(s string) *string {
	return &s
}
