package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	db *gorm.DB
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{
		db: db,
	}
}

// GetAll retrieves one page of coupons plus the total count.
func (r *GORMCouponRepository) GetAll(page, limit int) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	var total int64
	if err := r.db.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}
	if err := r.db.Scopes(paginate(page, limit)).Order("created_at").Find(&coupons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get coupons: %w", err)
	}
	return coupons, total, nil
}

// GetByID retrieves a single coupon by its ID.
func (r *GORMCouponRepository) GetByID(id string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("coupon with ID %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon by ID %s: %w", id, err)
	}
	return &coupon, nil
}

// GetByNameUnexpired matches on exact name with a strict expiration guard.
func (r *GORMCouponRepository) GetByNameUnexpired(name string, now time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.First(&coupon, "name = ? AND expiration_date > ?", name, now).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no usable coupon with name %s: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon by name %s: %w", name, err)
	}
	return &coupon, nil
}

// Create creates a new coupon.
func (r *GORMCouponRepository) Create(coupon *models.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// Update updates an existing coupon. Existence is checked first: GORM's
// Save falls back to an insert when the row is missing.
func (r *GORMCouponRepository) Update(coupon *models.Coupon) error {
	var existing models.Coupon
	if err := r.db.Select("id").First(&existing, "id = ?", coupon.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("coupon with ID %s: %w", coupon.ID, apperr.ErrNotFound)
		}
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if err := r.db.Save(coupon).Error; err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	return nil
}

// Delete removes a coupon by its ID. The delete is unscoped so a
// soft-deleted row cannot shadow the unique name index when the same
// coupon name is later recreated.
func (r *GORMCouponRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("coupon with ID %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
