package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by their username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, apperr.ErrNotFound)
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
}

// GetByID returns a user with their address book.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, apperr.ErrNotFound)
	}
	copied := user
	copied.Addresses = append([]models.Address(nil), user.Addresses...)
	return &copied, nil
}

// AddAddress appends an address to the user's address book.
func (r *MockUserRepository) AddAddress(userID string, address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", userID, apperr.ErrNotFound)
	}
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	address.UserID = userID
	user.Addresses = append(user.Addresses, *address)
	r.users[userID] = user
	return nil
}

// UpdateAddress modifies an address owned by the user.
func (r *MockUserRepository) UpdateAddress(userID string, address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", userID, apperr.ErrNotFound)
	}
	for i := range user.Addresses {
		if user.Addresses[i].ID == address.ID {
			address.UserID = userID
			user.Addresses[i] = *address
			r.users[userID] = user
			return nil
		}
	}
	return fmt.Errorf("address with ID %s: %w", address.ID, apperr.ErrNotFound)
}

// DeleteAddress removes an address owned by the user.
func (r *MockUserRepository) DeleteAddress(userID, addressID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", userID, apperr.ErrNotFound)
	}
	for i := range user.Addresses {
		if user.Addresses[i].ID == addressID {
			user.Addresses = append(user.Addresses[:i], user.Addresses[i+1:]...)
			r.users[userID] = user
			return nil
		}
	}
	return fmt.Errorf("address with ID %s: %w", addressID, apperr.ErrNotFound)
}
