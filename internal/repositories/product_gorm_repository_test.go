package repositories_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return repositories.NewGORMProductRepository(db)
}

func TestUpdateProduct(t *testing.T) {
	repo := setupProductRepo(t)

	product := models.Product{Title: "Widget", Price: 500, Quantity: 5}
	require.NoError(t, repo.Create(&product))

	product.Price = 700
	require.NoError(t, repo.Update(&product))

	updated, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 700, updated.Price)
}

func TestUpdateMissingProductReturnsNotFound(t *testing.T) {
	repo := setupProductRepo(t)

	ghost := models.Product{ID: "ghost-1", Title: "Ghost", Price: 500, Quantity: 1}
	err := repo.Update(&ghost)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// The failed update must not have inserted the row.
	_, err = repo.GetByID("ghost-1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDecrementStockIncrementSold(t *testing.T) {
	repo := setupProductRepo(t)

	product := models.Product{Title: "Widget", Price: 500, Quantity: 5}
	require.NoError(t, repo.Create(&product))

	err := repo.DecrementStockIncrementSold([]models.OrderItem{
		{ProductID: product.ID, Quantity: 3},
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, 3, updated.Sold)

	// Draining the remaining stock exactly is allowed.
	err = repo.DecrementStockIncrementSold([]models.OrderItem{
		{ProductID: product.ID, Quantity: 2},
	})
	require.NoError(t, err)

	updated, err = repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, 5, updated.Sold)
}

func TestDecrementStockIncrementSold_InsufficientStockRollsBack(t *testing.T) {
	repo := setupProductRepo(t)

	plenty := models.Product{Title: "Plenty", Price: 500, Quantity: 10}
	scarce := models.Product{Title: "Scarce", Price: 500, Quantity: 1}
	require.NoError(t, repo.Create(&plenty))
	require.NoError(t, repo.Create(&scarce))

	err := repo.DecrementStockIncrementSold([]models.OrderItem{
		{ProductID: plenty.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 2},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// The first line's decrement must have rolled back with the batch.
	p, err := repo.GetByID(plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, 0, p.Sold)

	s, err := repo.GetByID(scarce.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Quantity)
	assert.Equal(t, 0, s.Sold)
}

func TestDecrementStockIncrementSold_UnknownProductConflicts(t *testing.T) {
	repo := setupProductRepo(t)

	err := repo.DecrementStockIncrementSold([]models.OrderItem{
		{ProductID: "no-such-product", Quantity: 1},
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}
