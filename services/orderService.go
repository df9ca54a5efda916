package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/repositories"
	"github.com/ekomponents/elektrokomp-api/utils"
)

// orderNumberAttempts bounds retries when a generated order number collides
// with an existing one (four random digits per day).
const orderNumberAttempts = 5

type CheckoutLine struct {
	ProductID uint
	Quantity  int
}

type OrderService struct {
	orders    repositories.OrderRepository
	products  repositories.ProductReader
	addresses repositories.AddressReader
	now       func() time.Time
	newNumber func(time.Time) string
}

func NewOrderService(orders repositories.OrderRepository, products repositories.ProductReader, addresses repositories.AddressReader) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		addresses: addresses,
		now:       time.Now,
		newNumber: utils.NewOrderNumber,
	}
}

// CreateOrder snapshots the cart into an immutable order. Product name, part
// number and tier-resolved unit price are copied per line so later product
// edits cannot rewrite history. The order and its items are written in a
// single transaction; the cart is left for the caller to clear.
func (s *OrderService) CreateOrder(userID uint, lines []CheckoutLine, shippingAddressID, billingAddressID uint, shippingFee, discount float64, ip string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if _, err := s.addresses.ForUser(shippingAddressID, userID); err != nil {
		return nil, addressErr(err)
	}
	if _, err := s.addresses.ForUser(billingAddressID, userID); err != nil {
		return nil, addressErr(err)
	}

	var (
		items    []models.OrderItem
		subtotal float64
		taxTotal float64
	)
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.products.ActiveByID(line.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if line.Quantity > product.Stock {
			return nil, ErrInsufficientStock
		}

		unit := product.UnitPriceFor(line.Quantity)
		lineTotal := unit * float64(line.Quantity)
		lineTax := lineTotal * float64(product.TaxRate) / 100

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			PartNumber:  product.PartNumber,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			TaxRate:     product.TaxRate,
			TotalPrice:  models.Round2(lineTotal),
		})
		subtotal += lineTotal
		taxTotal += lineTax
	}

	order := &models.Order{
		UserID:            userID,
		ShippingAddressID: shippingAddressID,
		BillingAddressID:  billingAddressID,
		Subtotal:          models.Round2(subtotal),
		TaxTotal:          models.Round2(taxTotal),
		ShippingFee:       models.Round2(shippingFee),
		Discount:          models.Round2(discount),
		PaymentStatus:     models.PaymentPending,
		FulfillmentStatus: models.FulfillmentPending,
		IPAddress:         ip,
	}
	order.GrandTotal = models.Round2(order.Subtotal + order.TaxTotal - order.Discount + order.ShippingFee)

	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = s.newNumber(s.now())
		err := s.orders.CreateWithItems(order, cloneItems(items))
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, ErrConflict
}

// UpdateFulfillmentStatus applies a forward-only transition. Tracking fields
// are optional and only written when provided.
func (s *OrderService) UpdateFulfillmentStatus(orderID uint, status, trackingNumber, carrier string) (*models.Order, error) {
	order, err := s.orders.ByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !models.ValidFulfillmentTransition(order.FulfillmentStatus, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateFulfillment(order.ID, status, trackingNumber, carrier); err != nil {
		return nil, err
	}

	order.FulfillmentStatus = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	if carrier != "" {
		order.Carrier = carrier
	}
	return order, nil
}

// PaymentResult is the gateway's verdict for a completed checkout session.
type PaymentResult struct {
	Succeeded bool
	PaymentID string
	Raw       []byte
}

// MarkPaymentResult records the gateway result against the order. The basket id
// must match the one stored at checkout; a callback naming one order but
// carrying another order's basket is rejected. A failed payment leaves the
// order pending so the buyer can retry from their order history.
func (s *OrderService) MarkPaymentResult(orderNumber, basketID string, result PaymentResult) (*models.Order, error) {
	order, err := s.orders.ByOrderNumber(orderNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.BasketID == "" || order.BasketID != basketID {
		return nil, ErrNotFound
	}

	status := order.PaymentStatus
	if result.Succeeded {
		status = models.PaymentPaid
	}
	if err := s.orders.UpdatePaymentResult(order.ID, status, result.PaymentID, result.Raw); err != nil {
		return nil, err
	}
	order.PaymentStatus = status
	order.PaymentID = result.PaymentID
	return order, nil
}

func (s *OrderService) OrdersForUser(userID uint) ([]models.Order, error) {
	return s.orders.ListForUser(userID)
}

func (s *OrderService) OrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orders.ByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func addressErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func cloneItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out
}
