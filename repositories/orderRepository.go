package repositories

import (
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
)

type OrderFilter struct {
	FulfillmentStatus string
	Search            string // matched against the order number
	Page              int
	PerPage           int
}

type OrderRepository interface {
	// CreateWithItems persists the order and its item snapshots atomically.
	// A uniqueness violation on the order number surfaces as
	// gorm.ErrDuplicatedKey so callers can regenerate and retry.
	CreateWithItems(order *models.Order, items []models.OrderItem) error
	ByID(id uint) (*models.Order, error)
	ByOrderNumber(orderNumber string) (*models.Order, error)
	ListForUser(userID uint) ([]models.Order, error)
	List(filter OrderFilter) ([]models.Order, int64, error)
	UpdateFulfillment(id uint, status, trackingNumber, carrier string) error
	UpdatePaymentResult(id uint, status, paymentID string, payload []byte) error
}

// AddressReader resolves checkout addresses with ownership checks.
type AddressReader interface {
	ForUser(addressID, userID uint) (*models.Address, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

func (r *gormOrderRepository) ByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Preload("User").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) ByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("User").
		Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) List(filter OrderFilter) ([]models.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}

	query := r.db.Model(&models.Order{})
	if filter.FulfillmentStatus != "" {
		query = query.Where("fulfillment_status = ?", filter.FulfillmentStatus)
	}
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filter.Search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(filter.PerPage).
		Offset((filter.Page - 1) * filter.PerPage).
		Find(&orders).Error
	return orders, count, err
}

func (r *gormOrderRepository) UpdateFulfillment(id uint, status, trackingNumber, carrier string) error {
	updates := map[string]interface{}{"fulfillment_status": status}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}
	if carrier != "" {
		updates["carrier"] = carrier
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormOrderRepository) UpdatePaymentResult(id uint, status, paymentID string, payload []byte) error {
	updates := map[string]interface{}{"payment_status": status}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}
	if len(payload) > 0 {
		updates["gateway_payload"] = payload
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

type gormAddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressReader {
	return &gormAddressRepository{db: db}
}

func (r *gormAddressRepository) ForUser(addressID, userID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}
