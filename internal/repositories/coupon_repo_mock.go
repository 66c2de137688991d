package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	coupons map[string]models.Coupon
	mu      sync.RWMutex
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[string]models.Coupon),
	}
}

// GetAll returns one page of coupons plus the total count.
func (r *MockCouponRepository) GetAll(page, limit int) ([]models.Coupon, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	couponList := make([]models.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		couponList = append(couponList, c)
	}
	sort.Slice(couponList, func(i, j int) bool { return couponList[i].ID < couponList[j].ID })

	total := int64(len(couponList))
	page, limit = normalizePage(page, limit)
	start := (page - 1) * limit
	if start >= len(couponList) {
		return []models.Coupon{}, total, nil
	}
	end := start + limit
	if end > len(couponList) {
		end = len(couponList)
	}
	return couponList[start:end], total, nil
}

// GetByID returns a coupon by its ID.
func (r *MockCouponRepository) GetByID(id string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupon, ok := r.coupons[id]
	if !ok {
		return nil, fmt.Errorf("coupon with ID %s: %w", id, apperr.ErrNotFound)
	}
	return &coupon, nil
}

// GetByNameUnexpired matches on exact name with a strict expiration guard.
func (r *MockCouponRepository) GetByNameUnexpired(name string, now time.Time) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, coupon := range r.coupons {
		if coupon.Name == name && coupon.ExpirationDate.After(now) {
			c := coupon
			return &c, nil
		}
	}
	return nil, fmt.Errorf("no usable coupon with name %s: %w", name, apperr.ErrNotFound)
}

// Create adds a new coupon.
func (r *MockCouponRepository) Create(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Update modifies an existing coupon.
func (r *MockCouponRepository) Update(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.coupons[coupon.ID]
	if !ok {
		return fmt.Errorf("coupon with ID %s: %w", coupon.ID, apperr.ErrNotFound)
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Delete removes a coupon by its ID.
func (r *MockCouponRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.coupons[id]
	if !ok {
		return fmt.Errorf("coupon with ID %s: %w", id, apperr.ErrNotFound)
	}
	delete(r.coupons, id)
	return nil
}
