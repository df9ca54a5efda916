package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/repositories"
)

type CatalogService struct {
	products repositories.ProductReader
}

func NewCatalogService(products repositories.ProductReader) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) Search(filter repositories.ProductFilter) ([]models.Product, int64, error) {
	return s.products.Search(filter)
}

// GetBySlug returns an active product with images, attributes and price
// tiers, and bumps its view counter. The increment is a single atomic UPDATE;
// a failure there is logged but never fails the page.
func (s *CatalogService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.products.ActiveBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.products.IncrementViewCount(product.ID); err != nil {
		log.Println("view count increment failed:", err)
	} else {
		product.ViewCount++
	}
	return product, nil
}

// Autocomplete returns up to 8 name/part-number matches; queries under two
// characters return nothing rather than scanning the whole table.
func (s *CatalogService) Autocomplete(query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.Product{}, nil
	}
	return s.products.Autocomplete(query)
}

func (s *CatalogService) SimilarProducts(product *models.Product) ([]models.Product, error) {
	return s.products.Similar(product, 4)
}
