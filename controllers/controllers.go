package controllers

import (
	"errors"
	"net/http"

	"github.com/ekomponents/elektrokomp-api/repositories"
	"github.com/ekomponents/elektrokomp-api/services"
)

var (
	cartService    *services.CartService
	orderService   *services.OrderService
	catalogService *services.CatalogService
	paymentClient  *services.PaymentClient
	orderRepo      repositories.OrderRepository
)

// Setup injects the service layer. Called once from main after the database
// and Redis connections are established.
func Setup(cart *services.CartService, orders *services.OrderService, catalog *services.CatalogService, payments *services.PaymentClient, orderRepository repositories.OrderRepository) {
	cartService = cart
	orderService = orders
	catalogService = catalog
	paymentClient = payments
	orderRepo = orderRepository
}

// serviceErrorStatus maps service layer errors to HTTP statuses.
func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, services.ErrInvalidQuantity):
		return http.StatusBadRequest, "quantity must be at least 1"
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict, "insufficient stock"
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty"
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid status transition"
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, "please retry the request"
	case errors.Is(err, services.ErrUpstream):
		return http.StatusBadGateway, "payment provider unavailable"
	default:
		return http.StatusInternalServerError, msgInternalServerError
	}
}

