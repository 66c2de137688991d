package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Status
// transitions are reserved to admins and managers.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Post("/", h.HandleCreateCashOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Post("/checkout-session", h.HandleCreateCheckoutSession)
	orderRoutes.Put("/pay/:orderId",
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager), h.HandleMarkPaid)
	orderRoutes.Put("/delivery/:orderId",
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager), h.HandleMarkDelivered)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// CreateOrderRequest represents the request body for order creation and
// checkout sessions. The shipping address is resolved against the
// authenticated user's address book.
type CreateOrderRequest struct {
	ShippingAddressID string `json:"shipping_address_id"`
}

// HandleCreateCashOrder converts the user's cart into a cash order.
func (h *OrderHandler) HandleCreateCashOrder(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create-order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.CreateCashOrder(userID, req.ShippingAddressID)
	if err != nil {
		log.Printf("Error creating cash order for user %s: %v", userID, err)
		return respondError(c, "Could not create order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Cash order created successfully",
		"data":    order,
	})
}

// HandleListOrders returns a paginated order list, implicitly scoped to the
// requester's own orders unless they hold an elevated role.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	page, limit := pageParams(c)

	orders, total, err := h.service.ListOrders(userID, role, page, limit)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(fiber.Map{
		"data":  orders,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// HandleGetOrderByID returns one order, subject to the ownership check.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	orderID := c.Params("id")

	order, err := h.service.GetOrderByID(userID, role, orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return respondError(c, "Could not retrieve order", err)
	}
	return c.JSON(fiber.Map{"data": order})
}

// HandleMarkPaid sets the order's paid flag and timestamp.
func (h *OrderHandler) HandleMarkPaid(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	order, err := h.service.MarkPaid(orderID)
	if err != nil {
		log.Printf("Error marking order %s paid: %v", orderID, err)
		return respondError(c, "Could not update order payment status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status changed to paid successfully",
		"data":    order,
	})
}

// HandleMarkDelivered sets the order's delivered flag and timestamp.
func (h *OrderHandler) HandleMarkDelivered(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	order, err := h.service.MarkDelivered(orderID)
	if err != nil {
		log.Printf("Error marking order %s delivered: %v", orderID, err)
		return respondError(c, "Could not update order delivery status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status changed to delivered successfully",
		"data":    order,
	})
}

// HandleCreateCheckoutSession builds a payment session for the user's cart
// and returns its descriptor; the order itself is created when the payment
// provider confirms success.
func (h *OrderHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout-session request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	session, err := h.service.CreateCheckoutSession(userID, req.ShippingAddressID)
	if err != nil {
		log.Printf("Error creating checkout session for user %s: %v", userID, err)
		return respondError(c, "Could not create checkout session", err)
	}
	return c.JSON(fiber.Map{
		"message": "Checkout session created successfully",
		"data":    session,
	})
}
