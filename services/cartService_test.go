package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
)

func newCartFixture() (*CartService, *mockProductReader, *mockCartRepository, *mockGuestCartStore) {
	products := new(mockProductReader)
	cart := new(mockCartRepository)
	guest := new(mockGuestCartStore)
	return NewCartService(products, cart, guest), products, cart, guest
}

func activeProduct(id uint, price float64, stock int) *models.Product {
	p := &models.Product{
		Name:       "Metal Film Resistor 1K",
		PartNumber: "R-1K-0603",
		Slug:       "metal-film-resistor-1k-r-1k-0603",
		Price:      price,
		TaxRate:    20,
		Stock:      stock,
		Active:     true,
	}
	p.ID = id
	return p
}

func TestAddItemSumsQuantities(t *testing.T) {
	svc, products, cart, _ := newCartFixture()
	actor := Actor{UserID: 7}

	products.On("ActiveByID", uint(1)).Return(activeProduct(1, 0.50, 100), nil)
	cart.On("Quantity", uint(7), uint(1)).Return(2, nil)
	cart.On("UpsertAdd", uint(7), uint(1), 3).Return(nil)

	err := svc.AddItem(context.Background(), actor, 1, 3)
	require.NoError(t, err)
	cart.AssertExpectations(t)
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	svc, _, _, _ := newCartFixture()

	err := svc.AddItem(context.Background(), Actor{UserID: 7}, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = svc.AddItem(context.Background(), Actor{UserID: 7}, 1, -5)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, products, _, _ := newCartFixture()
	products.On("ActiveByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.AddItem(context.Background(), Actor{UserID: 7}, 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc, products, cart, _ := newCartFixture()

	products.On("ActiveByID", uint(1)).Return(activeProduct(1, 0.50, 5), nil)
	cart.On("Quantity", uint(7), uint(1)).Return(4, nil)

	err := svc.AddItem(context.Background(), Actor{UserID: 7}, 1, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	cart.AssertNotCalled(t, "UpsertAdd", uint(7), uint(1), 2)
}

func TestAddItemGuestGoesToStore(t *testing.T) {
	svc, products, _, guest := newCartFixture()
	actor := Actor{SessionID: "abc123"}

	products.On("ActiveByID", uint(1)).Return(activeProduct(1, 0.50, 100), nil)
	guest.On("Quantity", "abc123", uint(1)).Return(0, nil)
	guest.On("Add", "abc123", uint(1), 2).Return(nil)

	err := svc.AddItem(context.Background(), actor, 1, 2)
	require.NoError(t, err)
	guest.AssertExpectations(t)
}

func TestUpdateItemChecksStock(t *testing.T) {
	svc, products, cart, _ := newCartFixture()

	products.On("ActiveByID", uint(1)).Return(activeProduct(1, 0.50, 10), nil)

	err := svc.UpdateItem(context.Background(), Actor{UserID: 7}, 1, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	cart.On("SetQuantity", uint(7), uint(1), 10).Return(nil)
	err = svc.UpdateItem(context.Background(), Actor{UserID: 7}, 1, 10)
	require.NoError(t, err)
	cart.AssertExpectations(t)
}

func TestUpdateItemMissingLine(t *testing.T) {
	svc, products, cart, _ := newCartFixture()

	products.On("ActiveByID", uint(1)).Return(activeProduct(1, 0.50, 10), nil)
	cart.On("SetQuantity", uint(7), uint(1), 2).Return(gorm.ErrRecordNotFound)

	err := svc.UpdateItem(context.Background(), Actor{UserID: 7}, 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _, cart, _ := newCartFixture()
	cart.On("Remove", uint(7), uint(1)).Return(nil).Twice()

	require.NoError(t, svc.RemoveItem(context.Background(), Actor{UserID: 7}, 1))
	require.NoError(t, svc.RemoveItem(context.Background(), Actor{UserID: 7}, 1))
	cart.AssertExpectations(t)
}

func TestGetCartAppliesTierPricing(t *testing.T) {
	svc, _, cart, _ := newCartFixture()

	product := activeProduct(1, 1.00, 1000)
	product.PriceTiers = []models.PriceTier{{MinQty: 10, Price: 0.80}}
	cart.On("LinesByUser", uint(7)).Return([]models.CartItem{
		{UserID: 7, ProductID: 1, Quantity: 20, Product: product},
	}, nil)

	view, err := svc.GetCart(context.Background(), Actor{UserID: 7})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 0.80, view.Items[0].UnitPrice)
	assert.Equal(t, 16.00, view.Items[0].LineTotal)
	assert.Equal(t, 16.00, view.Subtotal)
	assert.Equal(t, 1, view.Count)
}

func TestGetCartDropsInactiveProducts(t *testing.T) {
	svc, _, cart, _ := newCartFixture()

	inactive := activeProduct(2, 5.00, 10)
	inactive.Active = false
	cart.On("LinesByUser", uint(7)).Return([]models.CartItem{
		{UserID: 7, ProductID: 1, Quantity: 2, Product: activeProduct(1, 0.50, 100)},
		{UserID: 7, ProductID: 2, Quantity: 1, Product: inactive},
	}, nil)

	view, err := svc.GetCart(context.Background(), Actor{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, uint(1), view.Items[0].ProductID)
}

func TestGetCartGuestSkipsMissingProducts(t *testing.T) {
	svc, products, _, guest := newCartFixture()

	guest.On("Lines", "abc123").Return(map[uint]int{1: 2, 99: 5}, nil)
	products.On("ActiveByID", uint(1)).Return(activeProduct(1, 0.50, 100), nil)
	products.On("ActiveByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

	view, err := svc.GetCart(context.Background(), Actor{SessionID: "abc123"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1.00, view.Subtotal)
}

func TestMergeGuestCartSumsAndClears(t *testing.T) {
	svc, _, cart, guest := newCartFixture()

	guest.On("Lines", "abc123").Return(map[uint]int{1: 3}, nil)
	cart.On("MergeLines", uint(7), map[uint]int{1: 3}).Return(nil)
	guest.On("Clear", "abc123").Return(nil)

	err := svc.MergeGuestCart(context.Background(), "abc123", 7)
	require.NoError(t, err)
	guest.AssertExpectations(t)
	cart.AssertExpectations(t)
}

func TestMergeGuestCartKeepsStoreOnFailure(t *testing.T) {
	svc, _, cart, guest := newCartFixture()

	guest.On("Lines", "abc123").Return(map[uint]int{1: 3}, nil)
	cart.On("MergeLines", uint(7), map[uint]int{1: 3}).Return(gorm.ErrInvalidTransaction)

	err := svc.MergeGuestCart(context.Background(), "abc123", 7)
	assert.Error(t, err)
	guest.AssertNotCalled(t, "Clear", "abc123")
}

func TestMergeGuestCartEmptySession(t *testing.T) {
	svc, _, cart, guest := newCartFixture()

	require.NoError(t, svc.MergeGuestCart(context.Background(), "", 7))
	guest.AssertNotCalled(t, "Lines", "")

	guest.On("Lines", "abc123").Return(map[uint]int{}, nil)
	require.NoError(t, svc.MergeGuestCart(context.Background(), "abc123", 7))
	cart.AssertNotCalled(t, "MergeLines", uint(7), map[uint]int{})
}
