package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository,
// keyed by user ID.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns a copy of the user's cart.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, apperr.ErrNotFound)
	}
	// Copy the line slice so callers cannot mutate the stored cart.
	copied := cart
	copied.Items = append([]models.CartLine(nil), cart.Items...)
	return &copied, nil
}

// Save upserts the cart under its owning user.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	for i := range cart.Items {
		if cart.Items[i].ID == "" {
			cart.Items[i].ID = uuid.New().String()
		}
		cart.Items[i].CartID = cart.ID
		cart.Items[i].Position = i
	}
	stored := *cart
	stored.Items = append([]models.CartLine(nil), cart.Items...)
	r.carts[cart.UserID] = stored
	return nil
}

// DeleteByUserID removes the user's cart. Idempotent.
func (r *MockCartRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
