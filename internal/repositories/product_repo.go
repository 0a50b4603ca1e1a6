package repositories

import (
	"errors"

	"techstore/internal/models"
	"techstore/internal/validation"
)

// Sentinel errors the handlers translate into HTTP statuses. Implementations
// return them wrapped with operation context; callers match with errors.Is.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateName    = errors.New("product name already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ListQuery carries a fully validated list request. Sort must come from the
// validation package; Category and the window are bound as statement
// parameters. A Limit of 0 means no window (the sorted-list endpoint does
// not paginate).
type ListQuery struct {
	Sort     validation.SortSpec
	Category string
	Skip     int
	Limit    int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(query ListQuery) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
