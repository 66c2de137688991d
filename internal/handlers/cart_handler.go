package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// CartHandler handles HTTP requests for the user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. All cart
// routes require an authenticated user.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	cartRoutes := router.Group("/cart", auth)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/applyCoupon", h.HandleApplyCoupon)
	cartRoutes.Put("/:lineId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/:lineId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClear)
}

// AddItemRequest represents the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// HandleAddItem adds a product to the authenticated user's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	cart, err := h.service.AddItem(userID, req.ProductID, req.Color, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return respondError(c, "Could not add product to cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product added successfully to cart",
		"data":    cart,
	})
}

// HandleGetCart returns the authenticated user's cart, or an empty data
// array when the user has none.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	cart, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return respondError(c, "Could not retrieve cart", err)
	}
	if cart == nil {
		return c.JSON(fiber.Map{"data": []models.CartLine{}})
	}
	return c.JSON(fiber.Map{"data": cart})
}

// UpdateQuantityRequest represents the request body for a line quantity update.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// HandleUpdateQuantity sets the quantity of one cart line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	lineID := c.Params("lineId")

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if _, err := h.service.UpdateQuantity(userID, lineID, req.Quantity); err != nil {
		log.Printf("Error updating quantity for cart line %s: %v", lineID, err)
		return respondError(c, "Could not update cart line quantity", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product quantity updated successfully",
	})
}

// HandleRemoveItem removes one line from the cart and returns the
// remaining items.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	lineID := c.Params("lineId")

	cart, err := h.service.RemoveItem(userID, lineID)
	if err != nil {
		log.Printf("Error removing cart line %s: %v", lineID, err)
		return respondError(c, "Could not remove product from cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product removed successfully from cart",
		"data":    cart.Items,
	})
}

// HandleClear deletes the authenticated user's cart entirely.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	if err := h.service.Clear(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared successfully",
	})
}

// ApplyCouponRequest represents the request body for applying a coupon.
type ApplyCouponRequest struct {
	CouponName string `json:"coupon_name" validate:"required"`
}

// HandleApplyCoupon applies a named coupon's discount to the cart total.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing apply-coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	cart, err := h.service.ApplyCoupon(userID, req.CouponName)
	if err != nil {
		log.Printf("Error applying coupon %s: %v", req.CouponName, err)
		return respondError(c, "Could not apply coupon", err)
	}
	return c.JSON(fiber.Map{
		"message": "Coupon applied successfully",
		"data":    cart,
	})
}

// validationFailed renders validator errors the same way for every handler.
func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
