package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService owns the mutable per-user cart aggregate: line item
// add/update/remove, eager total recomputation, and coupon application.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	couponRepo  repositories.CouponRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, couponRepo repositories.CouponRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
	}
}

// AddItem adds a product to the user's cart, creating the cart if the user
// has none. A line already holding the same (product, color) combination
// has its quantity incremented instead of a duplicate line being appended.
// The line's price is snapshotted from the product at this moment and not
// re-fetched later. No stock is reserved here.
func (s *CartService) AddItem(userID, productID, color string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d: %w", quantity, apperr.ErrUnprocessable)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("unknown product %s: %w", productID, apperr.ErrUnprocessable)
		}
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		// First item for this user: create the cart implicitly.
		cart = &models.Cart{UserID: userID}
	}

	if line := cart.FindLineByProduct(productID, color); line != nil {
		line.Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartLine{
			ProductID: productID,
			Color:     color,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	// The priced base changed, so any active discount is invalidated.
	cart.RecomputeTotal()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of one cart line and recomputes totals.
func (s *CartService) UpdateQuantity(userID, lineID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d: %w", quantity, apperr.ErrUnprocessable)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	line := cart.FindLine(lineID)
	if line == nil {
		return nil, fmt.Errorf("no cart line with ID %s: %w", lineID, apperr.ErrNotFound)
	}
	line.Quantity = quantity

	cart.RecomputeTotal()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes one cart line. Removing an absent line is a no-op,
// not an error; a missing cart still is.
func (s *CartService) RemoveItem(userID, lineID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ID == lineID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}

	cart.RecomputeTotal()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the user's cart entirely. Idempotent.
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.DeleteByUserID(userID)
}

// ApplyCoupon looks up an unexpired coupon by name (case-insensitive: names
// are normalized to upper case) and records the discounted total on the
// cart. TotalPrice itself is not mutated. Expiry is strict: a coupon whose
// expiration date equals the current instant is already unusable.
func (s *CartService) ApplyCoupon(userID, couponName string) (*models.Cart, error) {
	name := strings.ToUpper(strings.TrimSpace(couponName))

	coupon, err := s.couponRepo.GetByNameUnexpired(name, time.Now())
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	// Fixed-point percentage discount in minor currency units.
	discounted := cart.TotalPrice - cart.TotalPrice*int64(coupon.Discount)/100
	cart.TotalPriceAfterDiscount = &discounted

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the user's cart, or (nil, nil) when the user has none:
// an empty cart is a normal read result, not an error.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart, nil
}
