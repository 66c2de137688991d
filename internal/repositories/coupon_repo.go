package repositories

import (
	"time"

	"storefront/internal/models"
)

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	GetAll(page, limit int) ([]models.Coupon, int64, error)
	GetByID(id string) (*models.Coupon, error)

	// GetByNameUnexpired returns the coupon with the given (already
	// upper-cased) name whose expiration date lies strictly after now.
	// A missing or exactly-expiring coupon yields apperr.ErrNotFound.
	GetByNameUnexpired(name string, now time.Time) (*models.Coupon, error)

	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id string) error
}
