package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/payment"
)

// EventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; kept as an interface so tests can mock it and the
// service can run without a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event routing keys published by the order service.
const (
	EventOrderCreated   = "order.created"
	EventOrderPaid      = "order.paid"
	EventOrderDelivered = "order.delivered"
)

// OrderConfig carries the order pipeline's tunables. TaxPrice and
// ShippingPrice are flat placeholders until a pricing-rule component
// exists. RequireShippingAddress decides whether an unresolvable shipping
// address fails the order or is silently omitted from it.
type OrderConfig struct {
	BaseURL                string
	Currency               string
	TaxPrice               int64
	ShippingPrice          int64
	RequireShippingAddress bool
}

// OrderService converts priced carts into immutable orders, reconciles
// catalog stock, tracks payment/delivery status, and builds checkout
// sessions for the payment collaborator.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
	payments    payment.Provider
	cfg         OrderConfig
}

// NewOrderService creates a new OrderService. publisher and payments may be
// nil; publishing and checkout sessions are then disabled respectively.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	publisher EventPublisher,
	payments payment.Provider,
	cfg OrderConfig,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		payments:    payments,
		cfg:         cfg,
	}
}

// pricedCheckout is the shared front half of cash orders and checkout
// sessions: the loaded cart, its resolved total, and the shipping address
// snapshot (nil when omitted).
type pricedCheckout struct {
	cart    *models.Cart
	user    *models.User
	total   int64
	address *models.OrderAddress
}

func (s *OrderService) priceCheckout(userID, shippingAddressID string) (*pricedCheckout, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// The discounted total wins when a coupon is active; tax and shipping
	// are flat placeholders on top.
	base := cart.TotalPrice
	if cart.TotalPriceAfterDiscount != nil {
		base = *cart.TotalPriceAfterDiscount
	}
	total := base + s.cfg.TaxPrice + s.cfg.ShippingPrice

	address, err := s.resolveAddress(user, shippingAddressID)
	if err != nil {
		return nil, err
	}

	return &pricedCheckout{cart: cart, user: user, total: total, address: address}, nil
}

// resolveAddress matches shippingAddressID against the user's address book
// and returns a snapshot. No match either fails the order or omits the
// address, depending on configuration.
func (s *OrderService) resolveAddress(user *models.User, shippingAddressID string) (*models.OrderAddress, error) {
	for _, addr := range user.Addresses {
		if addr.ID == shippingAddressID {
			return &models.OrderAddress{
				Alias:       addr.Alias,
				Details:     addr.Details,
				PhoneNumber: addr.PhoneNumber,
				City:        addr.City,
				PostalCode:  addr.PostalCode,
			}, nil
		}
	}
	if s.cfg.RequireShippingAddress {
		return nil, fmt.Errorf("no address with ID %s in the user's address book: %w",
			shippingAddressID, apperr.ErrUnprocessable)
	}
	return nil, nil
}

// CreateCashOrder turns the user's priced cart into an immutable order,
// decrements catalog stock, and clears the cart. The stock decrement is a
// conditional bulk update; if it fails (insufficient stock or a concurrent
// order won the race) the freshly created order is unwound again, so an
// order never exists without its stock having been reconciled.
func (s *OrderService) CreateCashOrder(userID, shippingAddressID string) (*models.Order, error) {
	checkout, err := s.priceCheckout(userID, shippingAddressID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(checkout.cart.Items))
	for _, line := range checkout.cart.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Color:     line.Color,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		TaxPrice:        s.cfg.TaxPrice,
		ShippingPrice:   s.cfg.ShippingPrice,
		TotalOrderPrice: checkout.total,
		PaymentType:     models.PaymentTypeCash,
		ShippingAddress: checkout.address,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.productRepo.DecrementStockIncrementSold(order.Items); err != nil {
		if delErr := s.orderRepo.Delete(order.ID); delErr != nil {
			log.Printf("Failed to unwind order %s after stock reconciliation failure: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("stock reconciliation failed: %w", err)
	}

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after order %s: %w", order.ID, err)
	}

	s.publishEvent(EventOrderCreated, map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.TotalOrderPrice,
	})

	return order, nil
}

// ListOrders returns one page of orders. Plain users are implicitly scoped
// to their own orders; elevated roles see all. The scope derives from the
// requester's role, never from caller-supplied filter input.
func (s *OrderService) ListOrders(requesterID, requesterRole string, page, limit int) ([]models.Order, int64, error) {
	if requesterID == "" {
		// An absent identity must not collapse into the unscoped listing.
		return nil, 0, fmt.Errorf("missing requester identity: %w", apperr.ErrForbidden)
	}
	owner := ""
	if !isElevated(requesterRole) {
		owner = requesterID
	}
	return s.orderRepo.GetAll(owner, page, limit)
}

// GetOrderByID returns one order, subject to the capability check.
func (s *OrderService) GetOrderByID(requesterID, requesterRole, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !Can(requesterRole, requesterID, order.UserID) {
		return nil, fmt.Errorf("order %s belongs to another user: %w", orderID, apperr.ErrForbidden)
	}
	return order, nil
}

// MarkPaid flags the order as paid, stamping the payment time. Idempotent:
// re-marking a paid order just refreshes the timestamp.
func (s *OrderService) MarkPaid(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publishEvent(EventOrderPaid, map[string]interface{}{"orderID": order.ID})
	return order, nil
}

// MarkDelivered flags the order as delivered, stamping the delivery time.
// Idempotent like MarkPaid.
func (s *OrderService) MarkDelivered(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publishEvent(EventOrderDelivered, map[string]interface{}{"orderID": order.ID})
	return order, nil
}

// CreateCheckoutSession prices the cart exactly like CreateCashOrder but,
// instead of persisting an order, asks the payment collaborator for a
// session. The cart ID travels as the client reference and the address
// snapshot as opaque metadata, so the order can be reconstructed when the
// provider confirms payment.
func (s *OrderService) CreateCheckoutSession(userID, shippingAddressID string) (*payment.CheckoutSession, error) {
	if s.payments == nil {
		return nil, fmt.Errorf("no payment provider configured")
	}

	checkout, err := s.priceCheckout(userID, shippingAddressID)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{}
	if checkout.address != nil {
		metadata["alias"] = checkout.address.Alias
		metadata["details"] = checkout.address.Details
		metadata["phoneNumber"] = checkout.address.PhoneNumber
		metadata["city"] = checkout.address.City
		metadata["postalCode"] = checkout.address.PostalCode
	}

	return s.payments.CreateSession(payment.CheckoutSessionRequest{
		AmountMinorUnits:  checkout.total,
		Currency:          s.cfg.Currency,
		SuccessURL:        s.cfg.BaseURL + "/orders",
		CancelURL:         s.cfg.BaseURL + "/cart",
		CustomerEmail:     checkout.user.Email,
		ClientReferenceID: checkout.cart.ID,
		Metadata:          metadata,
	})
}

// publishEvent sends an order event, logging rather than failing the
// operation when the broker is unavailable.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
