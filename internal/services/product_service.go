package services

import (
	"encoding/json"
	"log"

	"techstore/internal/models"
	"techstore/internal/repositories"
	"techstore/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to products: price
// normalization, catalog event publication, and delegation to the repository.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case catalog events are skipped.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListProducts retrieves products for a validated list query.
func (s *ProductService) ListProducts(query repositories.ListQuery) ([]models.Product, error) {
	return s.repo.List(query)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product from a validated payload. The price is
// rounded to two decimal places before it reaches the store.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        input.Name,
		Price:       roundPrice(input.Price),
		Category:    input.Category,
		Description: input.Description,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publishEvent("product.created", product)
	return product, nil
}

// UpdateProduct replaces the editable fields of an existing product. The id
// and creation timestamp are preserved by the repository.
func (s *ProductService) UpdateProduct(id uint, input models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		ID:          id,
		Name:        input.Name,
		Price:       roundPrice(input.Price),
		Category:    input.Category,
		Description: input.Description,
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", &models.Product{ID: id})
	return nil
}

// roundPrice normalizes a price to two fractional digits, half away from
// zero, matching the decimal(10,2) price column.
func roundPrice(price float64) float64 {
	rounded, _ := decimal.NewFromFloat(price).Round(2).Float64()
	return rounded
}

// publishEvent sends a catalog event to RabbitMQ. Publication is
// best-effort: a broker failure is logged and never fails the request.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.mqClient == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"productID": product.ID,
		"name":      product.Name,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	if err := s.mqClient.Publish(body); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", event, product.ID, err)
	}
}
