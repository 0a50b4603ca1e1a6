package repositories_test

import (
	"testing"

	"techstore/internal/models"
	"techstore/internal/repositories"
	"techstore/internal/validation"

	"github.com/stretchr/testify/assert"
)

// The in-memory repository must honor the same contract as the GORM one.
func TestMockProductRepository_Contract(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	widget := &models.Product{Name: "Widget", Price: 10.00, Category: "Tools"}
	assert.NoError(t, repo.Create(widget))
	assert.NotZero(t, widget.ID)
	assert.False(t, widget.CreatedAt.IsZero())

	err := repo.Create(&models.Product{Name: "Widget", Price: 5.00, Category: "Tools"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateName)

	gadget := &models.Product{Name: "Gadget", Price: 25.00, Category: "Tools"}
	assert.NoError(t, repo.Create(gadget))

	got, err := repo.GetByID(widget.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	_, err = repo.GetByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Update(&models.Product{ID: gadget.ID, Name: "Widget", Price: 25.00, Category: "Tools"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateName)

	updated := &models.Product{ID: widget.ID, Name: "Widget Pro", Price: 12.00, Category: "Hardware"}
	assert.NoError(t, repo.Update(updated))
	assert.Equal(t, widget.CreatedAt, updated.CreatedAt)

	products, err := repo.List(repositories.ListQuery{
		Sort:  validation.SortSpec{Field: "price", Descending: true},
		Limit: 1,
	})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Gadget", products[0].Name)

	assert.NoError(t, repo.Delete(widget.ID))
	assert.ErrorIs(t, repo.Delete(widget.ID), repositories.ErrProductNotFound)
}
