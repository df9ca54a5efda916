package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ekomponents/elektrokomp-api/models"
)

// CartRepository is the persisted-cart store for authenticated users.
type CartRepository interface {
	// UpsertAdd adds qty to the (user, product) line, creating it if absent.
	// Safe under concurrent adds: the unique key plus ON DUPLICATE KEY UPDATE
	// resolves races to a single line.
	UpsertAdd(userID, productID uint, qty int) error
	SetQuantity(userID, productID uint, qty int) error
	Remove(userID, productID uint) error
	Quantity(userID, productID uint) (int, error)
	LinesByUser(userID uint) ([]models.CartItem, error)
	// MergeLines applies a guest cart in one transaction, summing quantities
	// into existing lines.
	MergeLines(userID uint, lines map[uint]int) error
	Clear(userID uint) error
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func upsertAdd(tx *gorm.DB, userID, productID uint, qty int) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + VALUES(quantity)"),
		}),
	}).Create(&item).Error
}

func (r *gormCartRepository) UpsertAdd(userID, productID uint, qty int) error {
	return upsertAdd(r.db, userID, productID, qty)
}

// SetQuantity overwrites the quantity of an existing line. It reports
// gorm.ErrRecordNotFound when the user has no line for the product.
func (r *gormCartRepository) SetQuantity(userID, productID uint, qty int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormCartRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *gormCartRepository) Quantity(userID, productID uint) (int, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

func (r *gormCartRepository) LinesByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Product.PriceTiers").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *gormCartRepository) MergeLines(userID uint, lines map[uint]int) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for productID, qty := range lines {
			if qty < 1 {
				continue
			}
			if err := upsertAdd(tx, userID, productID, qty); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormCartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
