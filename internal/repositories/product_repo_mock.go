package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"techstore/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the store closely enough for tests: generated ids and
// timestamps, name uniqueness, ordering and windowing on List.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// List returns products matching the query, sorted and windowed.
func (r *MockProductRepository) List(query ListQuery) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		list = append(list, p)
	}

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if query.Sort.Descending {
			a, b = b, a
		}
		return productLess(query.Sort.Field, a, b)
	})

	if query.Limit > 0 {
		if query.Skip >= len(list) {
			return []models.Product{}, nil
		}
		list = list[query.Skip:]
		if len(list) > query.Limit {
			list = list[:query.Limit]
		}
	}
	return list, nil
}

func productLess(field string, a, b models.Product) bool {
	switch field {
	case "name":
		return a.Name < b.Name
	case "price":
		return a.Price < b.Price
	case "category":
		return a.Category < b.Category
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.ID < b.ID
	}
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// Create adds a new product, assigning its ID and creation timestamp.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == product.Name {
			return fmt.Errorf("create product %q: %w", product.Name, ErrDuplicateName)
		}
	}

	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product, preserving its creation timestamp.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("update product %d: %w", product.ID, ErrProductNotFound)
	}
	for _, p := range r.products {
		if p.Name == product.Name && p.ID != product.ID {
			return fmt.Errorf("update product %d: %w", product.ID, ErrDuplicateName)
		}
	}

	product.CreatedAt = existing.CreatedAt
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("delete product %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}
