package services_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCouponName(t *testing.T) {
	assert.Equal(t, "SUMMER21", services.NormalizeCouponName("summer21"))
	assert.Equal(t, "SUMMER21", services.NormalizeCouponName("  Summer21 "))
	assert.Equal(t, "SUMMER21", services.NormalizeCouponName("SUMMER21"))
}

func TestCouponService_CreateNormalizesName(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	coupon := &models.Coupon{
		Name:           " winter5 ",
		ExpirationDate: time.Now().Add(24 * time.Hour),
		Discount:       5,
	}
	require.NoError(t, service.CreateCoupon(coupon))
	assert.Equal(t, "WINTER5", coupon.Name)

	// The stored coupon is findable under the canonical name.
	found, err := repo.GetByNameUnexpired("WINTER5", time.Now())
	require.NoError(t, err)
	assert.Equal(t, coupon.ID, found.ID)
}

func TestCouponService_DeleteRemovesCoupon(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	coupon := &models.Coupon{
		Name:           "GONE",
		ExpirationDate: time.Now().Add(time.Hour),
		Discount:       10,
	}
	require.NoError(t, service.CreateCoupon(coupon))
	require.NoError(t, service.DeleteCoupon(coupon.ID))

	_, err := service.GetCouponByID(coupon.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
