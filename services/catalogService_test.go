package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
)

func TestGetBySlugBumpsViewCount(t *testing.T) {
	products := new(mockProductReader)
	svc := NewCatalogService(products)

	product := activeProduct(1, 0.50, 100)
	product.ViewCount = 41
	products.On("ActiveBySlug", product.Slug).Return(product, nil)
	products.On("IncrementViewCount", uint(1)).Return(nil)

	got, err := svc.GetBySlug(product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 42, got.ViewCount)
	products.AssertExpectations(t)
}

func TestGetBySlugSurvivesCounterFailure(t *testing.T) {
	products := new(mockProductReader)
	svc := NewCatalogService(products)

	product := activeProduct(1, 0.50, 100)
	product.ViewCount = 41
	products.On("ActiveBySlug", product.Slug).Return(product, nil)
	products.On("IncrementViewCount", uint(1)).Return(gorm.ErrInvalidDB)

	got, err := svc.GetBySlug(product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 41, got.ViewCount)
}

func TestGetBySlugNotFound(t *testing.T) {
	products := new(mockProductReader)
	svc := NewCatalogService(products)

	products.On("ActiveBySlug", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAutocompleteShortQuery(t *testing.T) {
	products := new(mockProductReader)
	svc := NewCatalogService(products)

	for _, q := range []string{"", "a", "  r  "} {
		got, err := svc.Autocomplete(q)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	products.AssertNotCalled(t, "Autocomplete", "a")
}

func TestAutocompleteTrimsQuery(t *testing.T) {
	products := new(mockProductReader)
	svc := NewCatalogService(products)

	products.On("Autocomplete", "lm317").Return([]models.Product{*activeProduct(1, 2.50, 10)}, nil)

	got, err := svc.Autocomplete("  lm317  ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
