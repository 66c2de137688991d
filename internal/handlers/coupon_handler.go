package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
)

// CouponHandler handles HTTP requests for coupon administration. Shoppers
// never touch these routes; they apply coupons through the cart.
type CouponHandler struct {
	service  *services.CouponService
	validate *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the coupon routes, all reserved to admins and
// managers.
func (h *CouponHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	couponRoutes := router.Group("/coupons", auth,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	couponRoutes.Get("/", h.HandleGetCoupons)
	couponRoutes.Get("/:id", h.HandleGetCouponByID)
	couponRoutes.Post("/", h.HandleCreateCoupon)
	couponRoutes.Put("/:id", h.HandleUpdateCoupon)
	couponRoutes.Delete("/:id", h.HandleDeleteCoupon)
}

// HandleGetCoupons returns one page of coupons.
func (h *CouponHandler) HandleGetCoupons(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	coupons, total, err := h.service.GetAllCoupons(page, limit)
	if err != nil {
		log.Printf("Error getting coupons: %v", err)
		return respondError(c, "Could not retrieve coupons", err)
	}
	return c.JSON(fiber.Map{
		"data":  coupons,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// HandleGetCouponByID returns a single coupon.
func (h *CouponHandler) HandleGetCouponByID(c *fiber.Ctx) error {
	couponID := c.Params("id")

	coupon, err := h.service.GetCouponByID(couponID)
	if err != nil {
		log.Printf("Error getting coupon %s: %v", couponID, err)
		return respondError(c, "Could not retrieve coupon", err)
	}
	return c.JSON(fiber.Map{"data": coupon})
}

// HandleCreateCoupon creates a new coupon.
func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		log.Printf("Error parsing create-coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(coupon); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateCoupon(&coupon); err != nil {
		log.Printf("Error creating coupon: %v", err)
		return respondError(c, "Could not create coupon", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Coupon created successfully",
		"data":    coupon,
	})
}

// HandleUpdateCoupon updates an existing coupon.
func (h *CouponHandler) HandleUpdateCoupon(c *fiber.Ctx) error {
	couponID := c.Params("id")

	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		log.Printf("Error parsing update-coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	coupon.ID = couponID
	if err := h.validate.Struct(coupon); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.UpdateCoupon(&coupon); err != nil {
		log.Printf("Error updating coupon %s: %v", couponID, err)
		return respondError(c, "Could not update coupon", err)
	}
	return c.JSON(fiber.Map{
		"message": "Coupon updated successfully",
		"data":    coupon,
	})
}

// HandleDeleteCoupon removes a coupon.
func (h *CouponHandler) HandleDeleteCoupon(c *fiber.Ctx) error {
	couponID := c.Params("id")

	if err := h.service.DeleteCoupon(couponID); err != nil {
		log.Printf("Error deleting coupon %s: %v", couponID, err)
		return respondError(c, "Could not delete coupon", err)
	}
	return c.JSON(fiber.Map{
		"message": "Coupon deleted successfully",
	})
}
