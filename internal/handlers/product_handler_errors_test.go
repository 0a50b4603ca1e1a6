package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"techstore/internal/handlers"
	"techstore/internal/models"
	"techstore/internal/repositories"
	"techstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// failingProductRepository returns the configured error from every
// operation, standing in for a store that cannot be reached.
type failingProductRepository struct {
	err error
}

func (r *failingProductRepository) List(query repositories.ListQuery) ([]models.Product, error) {
	return nil, r.err
}

func (r *failingProductRepository) GetByID(id uint) (*models.Product, error) {
	return nil, r.err
}

func (r *failingProductRepository) Create(product *models.Product) error {
	return r.err
}

func (r *failingProductRepository) Update(product *models.Product) error {
	return r.err
}

func (r *failingProductRepository) Delete(id uint) error {
	return r.err
}

func decodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func setupFailingApp(repoErr error) *fiber.App {
	productService := services.NewProductService(&failingProductRepository{err: repoErr}, nil)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()
	productHandler.RegisterRoutes(app)
	return app
}

// A connectivity failure surfaces as 503, anything unclassified as 500 —
// both with a fixed generic body that leaks no internal detail.
func TestStoreFailureStatusMapping(t *testing.T) {
	unavailable := fmt.Errorf("list products: dial tcp 127.0.0.1:5432: connect: connection refused: %w",
		repositories.ErrStoreUnavailable)
	internal := errors.New("failed to list products: constraint x_y_z violated")

	requests := []struct {
		name   string
		method string
		target string
		body   map[string]interface{}
	}{
		{"list", http.MethodGet, "/products/", nil},
		{"sorted list", http.MethodGet, "/products/sort/price_desc", nil},
		{"get by id", http.MethodGet, "/products/1", nil},
		{"create", http.MethodPost, "/products/", map[string]interface{}{
			"name": "Widget", "price": 10.0, "category": "Tools"}},
		{"update", http.MethodPut, "/products/1", map[string]interface{}{
			"name": "Widget", "price": 10.0, "category": "Tools"}},
		{"delete", http.MethodDelete, "/products/1", nil},
	}

	cases := []struct {
		name           string
		repoErr        error
		expectedStatus int
		expectedBody   string
	}{
		{"store unavailable", unavailable, http.StatusServiceUnavailable, "Database connection unavailable"},
		{"unclassified error", internal, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := setupFailingApp(tc.repoErr)
			for _, r := range requests {
				resp, err := app.Test(jsonRequest(r.method, r.target, r.body), -1)
				assert.NoError(t, err, "%s", r.name)
				assert.Equal(t, tc.expectedStatus, resp.StatusCode, "%s", r.name)

				var body map[string]string
				assert.NoError(t, decodeJSON(resp, &body), "%s", r.name)
				assert.Equal(t, tc.expectedBody, body["message"], "%s", r.name)
				assert.NotContains(t, body["message"], "constraint", "%s", r.name)
				assert.NotContains(t, body["message"], "dial tcp", "%s", r.name)
			}
		})
	}
}
