package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AddressHandler handles HTTP requests for the authenticated user's address
// book, which order creation resolves shipping addresses against.
type AddressHandler struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(userRepo repositories.UserRepository) *AddressHandler {
	return &AddressHandler{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	addressRoutes := router.Group("/addresses", auth)
	addressRoutes.Post("/", h.HandleAddAddress)
	addressRoutes.Get("/", h.HandleGetAddresses)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// HandleAddAddress appends an address to the user's address book.
func (h *AddressHandler) HandleAddAddress(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		log.Printf("Error parsing add-address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userRepo.AddAddress(userID, &address); err != nil {
		log.Printf("Error adding address for user %s: %v", userID, err)
		return respondError(c, "Could not add address", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Address added successfully",
		"data":    address,
	})
}

// HandleGetAddresses returns the user's address book.
func (h *AddressHandler) HandleGetAddresses(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		log.Printf("Error getting addresses for user %s: %v", userID, err)
		return respondError(c, "Could not retrieve addresses", err)
	}
	return c.JSON(fiber.Map{"data": user.Addresses})
}

// HandleUpdateAddress modifies one of the user's addresses.
func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	addressID := c.Params("id")

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		log.Printf("Error parsing update-address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.ID = addressID
	if err := h.validate.Struct(address); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userRepo.UpdateAddress(userID, &address); err != nil {
		log.Printf("Error updating address %s: %v", addressID, err)
		return respondError(c, "Could not update address", err)
	}
	return c.JSON(fiber.Map{
		"message": "Address updated successfully",
		"data":    address,
	})
}

// HandleDeleteAddress removes one of the user's addresses.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	addressID := c.Params("id")

	if err := h.userRepo.DeleteAddress(userID, addressID); err != nil {
		log.Printf("Error deleting address %s: %v", addressID, err)
		return respondError(c, "Could not remove address", err)
	}
	return c.JSON(fiber.Map{
		"message": "Address removed successfully",
	})
}
