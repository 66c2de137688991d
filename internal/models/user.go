package models

import "gorm.io/gorm"

// User roles. Plain users only see their own resources; admin and manager
// are elevated roles.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User represents a user of the store.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string    `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user admin manager"`
	Addresses  []Address `json:"addresses" gorm:"foreignKey:UserID"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Address is one entry in a user's address book. Orders copy the matched
// address at creation time instead of referencing it.
type Address struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string `json:"-" gorm:"index;type:varchar(36)"`
	Alias       string `json:"alias" validate:"required,max=50"`
	Details     string `json:"details" validate:"required,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	City        string `json:"city" validate:"omitempty,max=100"`
	PostalCode  string `json:"postal_code" validate:"omitempty,max=20"`
}
