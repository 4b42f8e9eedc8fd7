package models

import "time"

// Category groups products in the catalog.
// A category cannot be deleted while products still reference it.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:500" json:"description,omitempty"`
	ImageURL    *string   `gorm:"size:500" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (c *Category) TableName() string {
	return "categories"
}
