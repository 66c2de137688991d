package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll retrieves one page of orders plus the total count. A
	// non-empty userID restricts the result set to that user's orders;
	// the caller (the order service) derives that filter from the
	// requester's role, never from request input.
	GetAll(userID string, page, limit int) ([]models.Order, int64, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error

	// Delete removes an order. Used to unwind a created order whose
	// stock reconciliation failed.
	Delete(id string) error
}
