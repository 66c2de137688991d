package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns one page of products plus the total count.
func (r *MockProductRepository) GetAll(page, limit int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })

	total := int64(len(productList))
	page, limit = normalizePage(page, limit)
	start := (page - 1) * limit
	if start >= len(productList) {
		return []models.Product{}, total, nil
	}
	end := start + limit
	if end > len(productList) {
		end = len(productList)
	}
	return productList[start:end], total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperr.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, apperr.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperr.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// DecrementStockIncrementSold checks every line against remaining stock
// first, then applies all updates, all under one lock so two concurrent
// checkouts cannot both pass the check.
func (r *MockProductRepository) DecrementStockIncrementSold(items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		product, ok := r.products[item.ProductID]
		if !ok {
			return fmt.Errorf("product with ID %s: %w", item.ProductID, apperr.ErrNotFound)
		}
		if product.Quantity < item.Quantity {
			return fmt.Errorf("insufficient stock for product %s (requested %d, available %d): %w",
				item.ProductID, item.Quantity, product.Quantity, apperr.ErrConflict)
		}
	}
	for _, item := range items {
		product := r.products[item.ProductID]
		product.Quantity -= item.Quantity
		product.Sold += item.Quantity
		r.products[item.ProductID] = product
	}
	return nil
}
