package models

import "time"

// CartItem is one product line in the cart of a client session.
// There is at most one row per (SessionID, ProductID) and Quantity is always
// positive while the row exists.
type CartItem struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"size:100;not null;index"`
	ProductID uint      `gorm:"not null;index"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (c *CartItem) TableName() string {
	return "cart_items"
}
