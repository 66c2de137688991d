package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll(page, limit int) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	// DecrementStockIncrementSold applies, as one atomic unit, a stock
	// decrement and a sold-counter increment for every given order item.
	// Each per-product update is conditional on sufficient remaining
	// stock; if any line would drive a quantity negative, nothing is
	// applied and the returned error wraps apperr.ErrConflict. This is
	// the guard that keeps two concurrent checkouts from over-selling.
	DecrementStockIncrementSold(items []models.OrderItem) error
}
