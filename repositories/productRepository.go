package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
)

// ProductFilter is the typed search filter: each set field maps to exactly one
// query predicate.
type ProductFilter struct {
	CategoryID   uint
	BrandIDs     []uint
	Query        string
	PriceMin     *float64
	PriceMax     *float64
	PackageTypes []string
	InStockOnly  bool
	Sort         string // newest | price-asc | price-desc | name | relevance
	Page         int
	PerPage      int
}

// ProductReader is the catalog read path.
type ProductReader interface {
	ActiveByID(id uint) (*models.Product, error)
	// ActiveBySlug loads a product with all images, attributes and tiers.
	ActiveBySlug(slug string) (*models.Product, error)
	// IncrementViewCount is a single atomic UPDATE; concurrent requests never
	// lose increments.
	IncrementViewCount(id uint) error
	Search(filter ProductFilter) ([]models.Product, int64, error)
	Autocomplete(query string) ([]models.Product, error)
	Similar(product *models.Product, limit int) ([]models.Product, error)
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductReader {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) ActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ? AND active = ?", id, true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_qty ASC")
		}).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) ActiveBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ? AND active = ?", slug, true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Attributes").
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_qty ASC")
		}).
		Preload("Brand").
		Preload("Category").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *gormProductRepository) Search(filter ProductFilter) ([]models.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 12
	}

	query := r.db.Model(&models.Product{}).Where("active = ?", true)

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if len(filter.BrandIDs) > 0 {
		query = query.Where("brand_id IN ?", filter.BrandIDs)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR part_number LIKE ?", like, like)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if len(filter.PackageTypes) > 0 {
		query = query.Where("package_type IN ?", filter.PackageTypes)
	}
	if filter.InStockOnly {
		query = query.Where("stock > 0")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price-asc":
		query = query.Order("price ASC")
	case "price-desc":
		query = query.Order("price DESC")
	case "name":
		query = query.Order("name ASC")
	case "relevance":
		query = query.Order("view_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	// a Limit inside the preload caps the whole IN query, not each product,
	// so images are loaded in full and consumers take Images[0]
	var products []models.Product
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Brand").
		Preload("Category").
		Limit(filter.PerPage).
		Offset((filter.Page - 1) * filter.PerPage).
		Find(&products).Error
	return products, count, err
}

func (r *gormProductRepository) Autocomplete(q string) ([]models.Product, error) {
	var products []models.Product
	like := "%" + q + "%"
	err := r.db.Where("active = ?", true).
		Where("name LIKE ? OR part_number LIKE ?", like, like).
		Select("id", "name", "part_number", "slug", "price", "tax_rate").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Limit(8).
		Find(&products).Error
	return products, err
}

func (r *gormProductRepository) Similar(product *models.Product, limit int) ([]models.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	var products []models.Product
	err := r.db.Where("category_id = ? AND id != ? AND active = ?", product.CategoryID, product.ID, true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Brand").
		Limit(limit).
		Find(&products).Error
	return products, err
}
