package services

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/repositories"
)

// Actor identifies who owns a cart: an authenticated user (persisted lines) or
// an anonymous session (lines in the guest store).
type Actor struct {
	UserID    uint
	SessionID string
}

func (a Actor) IsGuest() bool {
	return a.UserID == 0
}

type CartService struct {
	products repositories.ProductReader
	cart     repositories.CartRepository
	guest    GuestCartStore
}

func NewCartService(products repositories.ProductReader, cart repositories.CartRepository, guest GuestCartStore) *CartService {
	return &CartService{products: products, cart: cart, guest: guest}
}

// AddItem adds qty of a product to the actor's cart. Adding the same product
// twice yields a single line with the summed quantity.
func (s *CartService) AddItem(ctx context.Context, actor Actor, productID uint, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.products.ActiveByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	existing, err := s.existingQuantity(ctx, actor, productID)
	if err != nil {
		return err
	}
	if existing+qty > product.Stock {
		return ErrInsufficientStock
	}

	if actor.IsGuest() {
		return s.guest.Add(ctx, actor.SessionID, productID, qty)
	}
	return s.cart.UpsertAdd(actor.UserID, productID, qty)
}

// UpdateItem sets the quantity of an existing line. Quantities below 1 are
// rejected; callers remove the line instead.
func (s *CartService) UpdateItem(ctx context.Context, actor Actor, productID uint, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.products.ActiveByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if qty > product.Stock {
		return ErrInsufficientStock
	}

	if actor.IsGuest() {
		return s.guest.Set(ctx, actor.SessionID, productID, qty)
	}
	if err := s.cart.SetQuantity(actor.UserID, productID, qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RemoveItem is idempotent; removing a line that does not exist succeeds.
func (s *CartService) RemoveItem(ctx context.Context, actor Actor, productID uint) error {
	if actor.IsGuest() {
		return s.guest.Remove(ctx, actor.SessionID, productID)
	}
	return s.cart.Remove(actor.UserID, productID)
}

// GetCart resolves lines against the live catalog: current prices, first
// image, tier-resolved unit price. Products that have gone missing or
// inactive since being added are dropped rather than erroring the whole cart.
func (s *CartService) GetCart(ctx context.Context, actor Actor) (*models.CartView, error) {
	if actor.IsGuest() {
		return s.guestCartView(ctx, actor.SessionID)
	}

	items, err := s.cart.LinesByUser(actor.UserID)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{Items: []models.CartLine{}}
	for _, item := range items {
		if item.Product == nil || !item.Product.Active {
			continue
		}
		view.Items = append(view.Items, buildLine(item.Product, item.Quantity))
	}
	finishView(view)
	return view, nil
}

func (s *CartService) guestCartView(ctx context.Context, sessionID string) (*models.CartView, error) {
	lines, err := s.guest.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	view := &models.CartView{Items: []models.CartLine{}}
	for _, id := range ids {
		product, err := s.products.ActiveByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, buildLine(product, lines[id]))
	}
	finishView(view)
	return view, nil
}

// MergeGuestCart folds a guest session's lines into the user's persisted cart
// at login. Existing lines get quantities summed; the merge runs in one
// transaction and the guest key is deleted only after it commits.
func (s *CartService) MergeGuestCart(ctx context.Context, sessionID string, userID uint) error {
	if sessionID == "" {
		return nil
	}
	lines, err := s.guest.Lines(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	if err := s.cart.MergeLines(userID, lines); err != nil {
		return err
	}
	return s.guest.Clear(ctx, sessionID)
}

// ClearCart empties a user's persisted cart. Called by the checkout handler
// after the order is created; order creation itself never touches the cart.
func (s *CartService) ClearCart(userID uint) error {
	return s.cart.Clear(userID)
}

func (s *CartService) existingQuantity(ctx context.Context, actor Actor, productID uint) (int, error) {
	if actor.IsGuest() {
		return s.guest.Quantity(ctx, actor.SessionID, productID)
	}
	return s.cart.Quantity(actor.UserID, productID)
}

func buildLine(product *models.Product, qty int) models.CartLine {
	unit := product.UnitPriceFor(qty)
	line := models.CartLine{
		ProductID:  product.ID,
		Name:       product.Name,
		PartNumber: product.PartNumber,
		Slug:       product.Slug,
		UnitPrice:  unit,
		Quantity:   qty,
		LineTotal:  models.Round2(unit * float64(qty)),
	}
	if len(product.Images) > 0 {
		line.ImageURL = product.Images[0].URL
	}
	return line
}

func finishView(view *models.CartView) {
	var subtotal float64
	for _, line := range view.Items {
		subtotal += line.LineTotal
	}
	view.Subtotal = models.Round2(subtotal)
	view.Count = len(view.Items)
}
