package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment types accepted at checkout.
const (
	PaymentTypeCash = "cash"
	PaymentTypeCard = "card"
)

// OrderItem is a frozen copy of a cart line at order creation time.
type OrderItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // Price snapshot carried over from the cart line
}

// OrderAddress is the shipping address snapshot copied, not referenced,
// from the user's address book at order creation time.
type OrderAddress struct {
	Alias       string `json:"alias"`
	Details     string `json:"details"`
	PhoneNumber string `json:"phone_number"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
}

// Order is an immutable snapshot of a priced cart, created at checkout.
// Once created, its items never change; only the payment and delivery
// status fields mutate thereafter. All prices are in minor currency units.
type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string        `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem   `json:"cart_items" gorm:"foreignKey:OrderID"`
	TaxPrice        int64         `json:"tax_price"`
	ShippingPrice   int64         `json:"shipping_price"`
	TotalOrderPrice int64         `json:"total_order_price"`
	PaymentType     string        `json:"payment_type" gorm:"type:varchar(10);default:cash"`
	ShippingAddress *OrderAddress `json:"shipping_address,omitempty" gorm:"embedded;embeddedPrefix:shipping_"`
	IsPaid          bool          `json:"is_paid"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	IsDelivered     bool          `json:"is_delivered"`
	DeliveredAt     *time.Time    `json:"delivered_at,omitempty"`
	gorm.Model                    // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
