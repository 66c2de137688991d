package models

import "time"

// CartLine is one (product, color) entry in a cart. Price is the snapshot
// of the product's price taken when the line was added; it is not
// re-fetched from the catalog on later recomputes.
type CartLine struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Price     int64  `json:"price"`
	Position  int    `json:"-" gorm:"index"` // preserves insertion order across reloads
}

// Cart is a user's in-progress, mutable collection of purchase lines and
// derived totals. At most one cart exists per user. TotalPriceAfterDiscount
// is nil whenever no coupon discount is active; any line mutation resets it
// to nil because the priced base changed.
//
// The cart is hard-deleted on checkout or clear, so it deliberately does not
// embed gorm.Model: a soft-deleted row would collide with the unique user
// index when the user starts a new cart.
type Cart struct {
	ID                      string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID                  string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items                   []CartLine `json:"cart_items" gorm:"foreignKey:CartID"`
	TotalPrice              int64      `json:"total_price"`
	TotalPriceAfterDiscount *int64     `json:"total_price_after_discount,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// RecomputeTotal sets TotalPrice to the sum of price × quantity over all
// lines and unsets any active discount. Called after every line mutation so
// the total is never computed lazily at read time.
func (c *Cart) RecomputeTotal() {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	c.TotalPrice = total
	c.TotalPriceAfterDiscount = nil
}

// FindLine returns the line with the given ID, or nil.
func (c *Cart) FindLine(lineID string) *CartLine {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindLineByProduct returns the line matching the (productID, color)
// uniqueness key, or nil.
func (c *Cart) FindLineByProduct(productID, color string) *CartLine {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Color == color {
			return &c.Items[i]
		}
	}
	return nil
}
