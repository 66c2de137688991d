package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// TestNewAppHealthCheck boots the full composition root against an
// in-memory database and checks the health endpoint.
func TestNewAppHealthCheck(t *testing.T) {
	viper.Set("DATABASE_DRIVER", "sqlite")
	viper.Set("DATABASE_DSN", "file:maintest?mode=memory&cache=shared")
	defer viper.Reset()

	app, authService, err := NewApp()
	require.NoError(t, err)
	require.NotNil(t, authService)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	_, err := openDatabase("oracle", "dsn")
	assert.Error(t, err)
}
