package repositories

import (
	"storefront/internal/models"
)

// CartRepository defines the interface for cart data access. A user has at
// most one cart, so lookups are keyed by user ID.
type CartRepository interface {
	// GetByUserID returns the user's cart with its lines in insertion
	// order, or an error wrapping apperr.ErrNotFound if none exists.
	GetByUserID(userID string) (*models.Cart, error)

	// Save upserts the cart and replaces its line set with the one on the
	// given aggregate.
	Save(cart *models.Cart) error

	// DeleteByUserID removes the user's cart and its lines. Deleting a
	// nonexistent cart is not an error.
	DeleteByUserID(userID string) error
}
