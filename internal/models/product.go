package models

import "gorm.io/gorm"

// Product represents a product in the store catalog.
// Price is in minor currency units (cents); all money arithmetic in this
// codebase is fixed-point integer arithmetic to avoid rounding drift.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Slug        string   `json:"slug" gorm:"index"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Sold        int      `json:"sold" validate:"gte=0"`
	Colors      []string `json:"colors" gorm:"serializer:json"`
	ImageCover  string   `json:"image_cover"`
	Images      []string `json:"images" gorm:"serializer:json"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
