package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/payment"
)

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

// orderFixture bundles the in-memory world the order pipeline runs against.
type orderFixture struct {
	orders    *services.OrderService
	carts     *services.CartService
	products  *repositories.MockProductRepository
	orderRepo *repositories.MockOrderRepository
	publisher *MockEventPublisher
}

func newOrderFixture(t *testing.T, cfg services.OrderConfig) *orderFixture {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	couponRepo := repositories.NewMockCouponRepository()
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	users := []models.User{
		{ID: "user-1", Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser},
		{ID: "user-2", Username: "bob", Email: "bob@example.com", Password: "x", Role: models.RoleUser},
	}
	for i := range users {
		require.NoError(t, userRepo.Create(&users[i]))
	}
	require.NoError(t, userRepo.AddAddress("user-1", &models.Address{
		ID: "addr-1", Alias: "home", Details: "1 Main St", City: "Springfield", PostalCode: "12345",
	}))

	products := []models.Product{
		{ID: "prod-1", Title: "Laptop", Price: 10000, Quantity: 10},
		{ID: "prod-2", Title: "Keyboard", Price: 7500, Quantity: 1},
	}
	for i := range products {
		require.NoError(t, productRepo.Create(&products[i]))
	}

	require.NoError(t, couponRepo.Create(&models.Coupon{
		Name:           "TEN",
		ExpirationDate: time.Now().Add(time.Hour),
		Discount:       10,
	}))

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://shop.test"
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}

	return &orderFixture{
		orders: services.NewOrderService(
			orderRepo, cartRepo, productRepo, userRepo,
			publisher, payment.NewSandboxProvider(cfg.BaseURL), cfg),
		carts:     services.NewCartService(cartRepo, productRepo, couponRepo),
		products:  productRepo,
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

func TestOrderService_CreateCashOrder_NoCart(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.orders.CreateCashOrder("user-1", "addr-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, total, err := f.orderRepo.GetAll("", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total, "a failed creation must not leave an order behind")
}

func TestOrderService_CreateCashOrder_DiscountedScenario(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	// One line: price 10000 x quantity 2 = 20000.
	_, err := f.carts.AddItem("user-1", "prod-1", "", 2)
	require.NoError(t, err)

	cart, err := f.carts.ApplyCoupon("user-1", "TEN")
	require.NoError(t, err)
	require.NotNil(t, cart.TotalPriceAfterDiscount)
	require.Equal(t, int64(18000), *cart.TotalPriceAfterDiscount)

	order, err := f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)

	assert.Equal(t, int64(18000), order.TotalOrderPrice, "discounted total wins over base total")
	assert.Equal(t, models.PaymentTypeCash, order.PaymentType)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "prod-1", order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "1 Main St", order.ShippingAddress.Details)

	// Stock reconciled: quantity down by 2, sold up by 2.
	product, err := f.products.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 8, product.Quantity)
	assert.Equal(t, 2, product.Sold)

	// The source cart is gone.
	remaining, err := f.carts.GetCart("user-1")
	require.NoError(t, err)
	assert.Nil(t, remaining)

	f.publisher.AssertCalled(t, "Publish", services.EventOrderCreated, mock.Anything)
}

func TestOrderService_CreateCashOrder_UndiscountedUsesBaseTotal(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 3)
	require.NoError(t, err)

	order, err := f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30000), order.TotalOrderPrice)
}

func TestOrderService_CreateCashOrder_InsufficientStockUnwindsOrder(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	// prod-2 has only 1 in stock.
	_, err := f.carts.AddItem("user-1", "prod-2", "", 3)
	require.NoError(t, err)

	_, err = f.orders.CreateCashOrder("user-1", "addr-1")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// The created order was unwound and the cart survives for a retry.
	_, total, err := f.orderRepo.GetAll("", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)

	cart, err := f.carts.GetCart("user-1")
	require.NoError(t, err)
	require.NotNil(t, cart)

	product, err := f.products.GetByID("prod-2")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)
	assert.Zero(t, product.Sold)
}

func TestOrderService_ConcurrentCheckout_OverOneUnitOfStock(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	// Two carts both want the last unit of prod-2.
	_, err := f.carts.AddItem("user-1", "prod-2", "", 1)
	require.NoError(t, err)
	_, err = f.carts.AddItem("user-2", "prod-2", "", 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, userID := range []string{"user-1", "user-2"} {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = f.orders.CreateCashOrder(userID, "")
		}(i, userID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperr.ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of two competing checkouts may win the last unit")

	product, err := f.products.GetByID("prod-2")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity, "stock must never go negative")
	assert.Equal(t, 1, product.Sold)
}

func TestOrderService_ShippingAddressResolution(t *testing.T) {
	t.Run("unresolvable address is omitted by default", func(t *testing.T) {
		f := newOrderFixture(t, services.OrderConfig{})
		_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
		require.NoError(t, err)

		order, err := f.orders.CreateCashOrder("user-1", "no-such-address")
		require.NoError(t, err)
		assert.Nil(t, order.ShippingAddress)
	})

	t.Run("unresolvable address fails when required", func(t *testing.T) {
		f := newOrderFixture(t, services.OrderConfig{RequireShippingAddress: true})
		_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
		require.NoError(t, err)

		_, err = f.orders.CreateCashOrder("user-1", "no-such-address")
		assert.ErrorIs(t, err, apperr.ErrUnprocessable)
	})
}

func TestOrderService_ListOrders_ScopedByRole(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
	require.NoError(t, err)
	_, err = f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)

	_, err = f.carts.AddItem("user-2", "prod-1", "", 1)
	require.NoError(t, err)
	_, err = f.orders.CreateCashOrder("user-2", "")
	require.NoError(t, err)

	// A plain user only ever sees their own orders.
	orders, total, err := f.orders.ListOrders("user-1", models.RoleUser, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	for _, order := range orders {
		assert.Equal(t, "user-1", order.UserID)
	}

	// Elevated roles see everything.
	_, total, err = f.orders.ListOrders("admin-1", models.RoleAdmin, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestOrderService_ListOrders_EmptyRequesterRejected(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
	require.NoError(t, err)
	_, err = f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)

	// A zero-value requester must not fall through to the unscoped
	// listing, whatever the role claims.
	_, _, err = f.orders.ListOrders("", models.RoleUser, 1, 20)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, _, err = f.orders.ListOrders("", models.RoleAdmin, 1, 20)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestOrderService_GetOrderByID_CapabilityCheck(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
	require.NoError(t, err)
	order, err := f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)

	// Owner and elevated roles may read it.
	_, err = f.orders.GetOrderByID("user-1", models.RoleUser, order.ID)
	assert.NoError(t, err)
	_, err = f.orders.GetOrderByID("someone-else", models.RoleManager, order.ID)
	assert.NoError(t, err)

	// Another plain user gets Forbidden, not NotFound.
	_, err = f.orders.GetOrderByID("user-2", models.RoleUser, order.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderService_MarkPaid_Idempotent(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
	require.NoError(t, err)
	order, err := f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)

	first, err := f.orders.MarkPaid(order.ID)
	require.NoError(t, err)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.PaidAt)

	// Re-marking is error-free and just refreshes the timestamp.
	second, err := f.orders.MarkPaid(order.ID)
	require.NoError(t, err)
	assert.True(t, second.IsPaid)
	require.NotNil(t, second.PaidAt)
	assert.False(t, second.PaidAt.Before(*first.PaidAt))

	_, err = f.orders.MarkPaid("no-such-order")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderService_MarkDelivered(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 1)
	require.NoError(t, err)
	order, err := f.orders.CreateCashOrder("user-1", "addr-1")
	require.NoError(t, err)

	updated, err := f.orders.MarkDelivered(order.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsDelivered)
	require.NotNil(t, updated.DeliveredAt)
}

func TestOrderService_CreateCheckoutSession(t *testing.T) {
	f := newOrderFixture(t, services.OrderConfig{BaseURL: "http://shop.test"})

	_, err := f.carts.AddItem("user-1", "prod-1", "", 2)
	require.NoError(t, err)
	cart, err := f.carts.ApplyCoupon("user-1", "TEN")
	require.NoError(t, err)

	session, err := f.orders.CreateCheckoutSession("user-1", "addr-1")
	require.NoError(t, err)

	assert.Equal(t, int64(18000), session.AmountMinorUnits, "session charges the discounted total in minor units")
	assert.Equal(t, "alice@example.com", session.CustomerEmail)
	assert.Equal(t, cart.ID, session.ClientReferenceID, "cart ID travels as the client reference for order reconstruction")
	assert.Equal(t, "http://shop.test/orders", session.SuccessURL)
	assert.Equal(t, "http://shop.test/cart", session.CancelURL)
	assert.Equal(t, "1 Main St", session.Metadata["details"])

	// Building a session does not consume the cart or the stock.
	remaining, err := f.carts.GetCart("user-1")
	require.NoError(t, err)
	require.NotNil(t, remaining)

	product, err := f.products.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, product.Quantity)
}
