package repositories

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"log"
	"net"

	"gorm.io/gorm"

	"techstore/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// Mutating operations run their existence/uniqueness checks and the write in
// a single transaction, so a failure never leaves partial state behind.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves products matching the validated query. The order clause is
// rendered from the allow-listed SortSpec; every caller-supplied value is a
// bound parameter.
func (r *GORMProductRepository) List(query ListQuery) ([]models.Product, error) {
	products := make([]models.Product, 0)
	tx := r.db.Model(&models.Product{})
	if query.Category != "" {
		tx = tx.Where("category = ?", query.Category)
	}
	tx = tx.Order(query.Sort.OrderClause())
	if query.Limit > 0 {
		tx = tx.Offset(query.Skip).Limit(query.Limit)
	}
	if err := tx.Find(&products).Error; err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
		}
		return nil, storeError(fmt.Sprintf("get product %d", id), err)
	}
	return &product, nil
}

// Create inserts a new product. The duplicate-name pre-check and the insert
// run in one transaction; the unique index on name backstops concurrent
// writers that both pass the pre-check.
func (r *GORMProductRepository) Create(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("name = ?", product.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}
		return tx.Create(product).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create product %q: %w", product.Name, ErrDuplicateName)
		}
		return storeError(fmt.Sprintf("create product %q", product.Name), err)
	}
	return nil
}

// Update replaces the caller-editable fields of an existing product. The
// product's ID selects the row; CreatedAt is refreshed from the stored row
// so callers always see the original timestamp.
func (r *GORMProductRepository) Update(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, "id = ?", product.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Product{}).
			Where("name = ? AND id <> ?", product.Name, product.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		// Only the replaceable columns; id and created_at stay put.
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"category":    product.Category,
			"description": product.Description,
		}).Error; err != nil {
			return err
		}
		product.CreatedAt = existing.CreatedAt
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return fmt.Errorf("update product %d: %w", product.ID, ErrProductNotFound)
		case errors.Is(err, ErrDuplicateName), errors.Is(err, gorm.ErrDuplicatedKey):
			return fmt.Errorf("update product %d: %w", product.ID, ErrDuplicateName)
		}
		return storeError(fmt.Sprintf("update product %d", product.ID), err)
	}
	return nil
}

// Delete removes a product by its ID. Hard delete; there is no tombstone.
func (r *GORMProductRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return err
		}
		log.Printf("Deleted product: %s", product.Name)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return fmt.Errorf("delete product %d: %w", id, ErrProductNotFound)
		}
		return storeError(fmt.Sprintf("delete product %d", id), err)
	}
	return nil
}

// storeError classifies a database failure: connectivity problems become
// ErrStoreUnavailable (503 at the boundary), anything else stays wrapped for
// the generic 500 path. The full detail is preserved for server-side logs.
func storeError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %s: %w", op, err, ErrStoreUnavailable)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
