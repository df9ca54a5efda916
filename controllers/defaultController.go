package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetRoot(ctx *gin.Context) {
	message := `Welcome to the ElectroKomponents API.

The following are the main endpoint groups:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- GET  "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

CATALOG
- GET "/" and "/home" - Homepage payload
- GET "/products" - Search and filter products
- GET "/products/:slug" - Product detail
- GET "/products/autocomplete" - Search box suggestions
- GET "/categories" - Category tree
- GET "/brands" - Brand list

CART
- GET    "/cart" - Current cart
- POST   "/cart/items" - Add item
- PUT    "/cart/items" - Update quantity
- DELETE "/cart/items/:productId" - Remove item

ORDERS
- POST "/checkout" - Create order and start payment
- GET  "/payment/callback" - Payment gateway callback
- GET  "/orders" - Order history
- GET  "/orders/:id" - Order detail

ADMIN (requires admin role)
- "/admin/..." - Dashboard, products, orders, customers, categories, brands, sliders`

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

func NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "route not found"})
}
