package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
// It belongs to exactly one category and is referenced by cart items.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   *string         `gorm:"size:500" json:"description,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stockQuantity"`
	ImageURL      *string         `gorm:"size:500" json:"imageUrl,omitempty"`
	IsFeatured    bool            `gorm:"not null;default:false" json:"isFeatured"`
	CategoryID    uint            `gorm:"not null;index" json:"categoryId"`
	Category      Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt     time.Time       `gorm:"not null" json:"createdAt"`
}

func (p *Product) TableName() string {
	return "products"
}
