package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/middlewares"
	"github.com/ekomponents/elektrokomp-api/services"
)

// cartActor builds the cart owner from the request: an authenticated user when
// a valid token was presented, otherwise the guest session cookie.
func cartActor(ctx *gin.Context) services.Actor {
	return services.Actor{
		UserID:    middlewares.UserID(ctx),
		SessionID: middlewares.CartSessionID(ctx),
	}
}

type cartItemBody struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// GetCart returns the actor's cart resolved against the live catalog.
func GetCart(ctx *gin.Context) {
	view, err := cartService.GetCart(ctx.Request.Context(), cartActor(ctx))
	if err != nil {
		log.Println("Error loading cart:", err)
		status, message := serviceErrorStatus(err)
		sendErrorResponse(ctx, status, message)
		return
	}
	sendDataResponse(ctx, http.StatusOK, view)
}

// AddCartItem adds a product to the cart, summing quantities on repeat adds.
func AddCartItem(ctx *gin.Context) {
	var body cartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := cartService.AddItem(ctx.Request.Context(), cartActor(ctx), body.ProductID, body.Quantity); err != nil {
		status, message := serviceErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Error adding cart item:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "item added to cart"})
}

// UpdateCartItem sets the quantity of an existing cart line.
func UpdateCartItem(ctx *gin.Context) {
	var body cartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := cartService.UpdateItem(ctx.Request.Context(), cartActor(ctx), body.ProductID, body.Quantity); err != nil {
		status, message := serviceErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Error updating cart item:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "cart updated"})
}

// RemoveCartItem removes a line; removing an absent line still succeeds.
func RemoveCartItem(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("productId"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := cartService.RemoveItem(ctx.Request.Context(), cartActor(ctx), uint(productID)); err != nil {
		log.Println("Error removing cart item:", err)
		status, message := serviceErrorStatus(err)
		sendErrorResponse(ctx, status, message)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "item removed"})
}
