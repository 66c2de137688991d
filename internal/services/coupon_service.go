package services

import (
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CouponService handles business logic related to coupons.
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
	}
}

// NormalizeCouponName upper-cases and trims a coupon name. Applied on every
// write and lookup so "summer21" and "SUMMER21" are the same coupon.
func NormalizeCouponName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// GetAllCoupons retrieves one page of coupons plus the total count.
func (s *CouponService) GetAllCoupons(page, limit int) ([]models.Coupon, int64, error) {
	return s.repo.GetAll(page, limit)
}

// GetCouponByID retrieves a single coupon by its ID.
func (s *CouponService) GetCouponByID(id string) (*models.Coupon, error) {
	return s.repo.GetByID(id)
}

// CreateCoupon creates a new coupon with a normalized name.
func (s *CouponService) CreateCoupon(coupon *models.Coupon) error {
	coupon.Name = NormalizeCouponName(coupon.Name)
	return s.repo.Create(coupon)
}

// UpdateCoupon updates an existing coupon, re-normalizing its name.
func (s *CouponService) UpdateCoupon(coupon *models.Coupon) error {
	coupon.Name = NormalizeCouponName(coupon.Name)
	return s.repo.Update(coupon)
}

// DeleteCoupon deletes a coupon by its ID.
func (s *CouponService) DeleteCoupon(id string) error {
	return s.repo.Delete(id)
}
