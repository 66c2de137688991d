package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperr"
)

// respondError maps a service error to its HTTP status via the error kind
// sentinels. Forbidden stays distinct from NotFound so callers cannot probe
// for resource existence through status codes.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrUnprocessable):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrConflict):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// currentUser pulls the authenticated user's ID and role out of the
// request locals set by the auth middleware.
func currentUser(c *fiber.Ctx) (userID, role string) {
	userID, _ = c.Locals("user_id").(string)
	role, _ = c.Locals("role").(string)
	return userID, role
}

// pageParams reads the page/limit query parameters with defaults.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	return page, limit
}
