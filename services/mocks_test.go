package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/repositories"
)

type mockProductReader struct {
	mock.Mock
}

func (m *mockProductReader) ActiveByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductReader) ActiveBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductReader) IncrementViewCount(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockProductReader) Search(filter repositories.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductReader) Autocomplete(query string) ([]models.Product, error) {
	args := m.Called(query)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductReader) Similar(product *models.Product, limit int) ([]models.Product, error) {
	args := m.Called(product, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) UpsertAdd(userID, productID uint, qty int) error {
	return m.Called(userID, productID, qty).Error(0)
}

func (m *mockCartRepository) SetQuantity(userID, productID uint, qty int) error {
	return m.Called(userID, productID, qty).Error(0)
}

func (m *mockCartRepository) Remove(userID, productID uint) error {
	return m.Called(userID, productID).Error(0)
}

func (m *mockCartRepository) Quantity(userID, productID uint) (int, error) {
	args := m.Called(userID, productID)
	return args.Int(0), args.Error(1)
}

func (m *mockCartRepository) LinesByUser(userID uint) ([]models.CartItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *mockCartRepository) MergeLines(userID uint, lines map[uint]int) error {
	return m.Called(userID, lines).Error(0)
}

func (m *mockCartRepository) Clear(userID uint) error {
	return m.Called(userID).Error(0)
}

type mockGuestCartStore struct {
	mock.Mock
}

func (m *mockGuestCartStore) Add(ctx context.Context, sessionID string, productID uint, qty int) error {
	return m.Called(sessionID, productID, qty).Error(0)
}

func (m *mockGuestCartStore) Set(ctx context.Context, sessionID string, productID uint, qty int) error {
	return m.Called(sessionID, productID, qty).Error(0)
}

func (m *mockGuestCartStore) Remove(ctx context.Context, sessionID string, productID uint) error {
	return m.Called(sessionID, productID).Error(0)
}

func (m *mockGuestCartStore) Quantity(ctx context.Context, sessionID string, productID uint) (int, error) {
	args := m.Called(sessionID, productID)
	return args.Int(0), args.Error(1)
}

func (m *mockGuestCartStore) Lines(ctx context.Context, sessionID string) (map[uint]int, error) {
	args := m.Called(sessionID)
	return args.Get(0).(map[uint]int), args.Error(1)
}

func (m *mockGuestCartStore) Clear(ctx context.Context, sessionID string) error {
	return m.Called(sessionID).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	return m.Called(order, items).Error(0)
}

func (m *mockOrderRepository) ByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepository) ByOrderNumber(orderNumber string) (*models.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepository) ListForUser(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepository) List(filter repositories.OrderFilter) ([]models.Order, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepository) UpdateFulfillment(id uint, status, trackingNumber, carrier string) error {
	return m.Called(id, status, trackingNumber, carrier).Error(0)
}

func (m *mockOrderRepository) UpdatePaymentResult(id uint, status, paymentID string, payload []byte) error {
	return m.Called(id, status, paymentID, payload).Error(0)
}

type mockAddressReader struct {
	mock.Mock
}

func (m *mockAddressReader) ForUser(addressID, userID uint) (*models.Address, error) {
	args := m.Called(addressID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}
