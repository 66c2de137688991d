package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a named, time-bound percentage discount applicable to a cart's
// total. Names are normalized to upper case on write and on lookup.
type Coupon struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	ExpirationDate time.Time `json:"expiration_date" validate:"required"`
	Discount       int       `json:"discount" validate:"required,gte=1,lte=99"`
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
