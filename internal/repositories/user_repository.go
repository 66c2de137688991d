package repositories

import (
	"storefront/internal/models"
)

// UserRepository defines the interface for user and address-book data
// access. Addresses live on the user aggregate; order creation resolves a
// shipping address through GetByID.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)

	AddAddress(userID string, address *models.Address) error
	UpdateAddress(userID string, address *models.Address) error
	DeleteAddress(userID, addressID string) error
}
