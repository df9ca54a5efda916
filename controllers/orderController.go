package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/services"
	"github.com/ekomponents/elektrokomp-api/utils"
)

const defaultShippingFee = 29.90

func shippingFee() float64 {
	if raw := os.Getenv("SHIPPING_FEE"); raw != "" {
		if fee, err := strconv.ParseFloat(raw, 64); err == nil {
			return fee
		}
	}
	return defaultShippingFee
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func orderEmailData(order *models.Order, user *models.User) utils.EmailData {
	data := utils.EmailData{
		Name:        user.FirstName,
		OrderNumber: order.OrderNumber,
		OrderDate:   order.CreatedAt.Format("02.01.2006 15:04"),
		GrandTotal:  formatAmount(order.GrandTotal),
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, utils.EmailOrderItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: formatAmount(item.UnitPrice),
			Total:     formatAmount(item.TotalPrice),
		})
	}
	return data
}

func sendOrderConfirmationEmail(order *models.Order, user *models.User) error {
	data := orderEmailData(order, user)
	data.Message = "We received your payment and your order is being processed."
	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(user.Email, "Order "+order.OrderNumber+" confirmed", data, templatePath)
}

func sendShippingNotificationEmail(order *models.Order, user *models.User) error {
	data := orderEmailData(order, user)
	data.Message = "Your order is on its way."
	data.TrackingNumber = order.TrackingNumber
	data.Carrier = order.Carrier
	templatePath := filepath.Join("templates", "shipping_notification.html")
	return utils.SendEmail(user.Email, "Order "+order.OrderNumber+" shipped", data, templatePath)
}

// Checkout snapshots the user's cart into an order, clears the cart and opens
// a hosted payment session. The redirect URL sends the buyer to the gateway's
// payment page.
func Checkout(ctx *gin.Context) {
	type CheckoutBody struct {
		ShippingAddressID uint `json:"shippingAddressId" binding:"required"`
		BillingAddressID  uint `json:"billingAddressId" binding:"required"`
	}

	var body CheckoutBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	userID := middlewares.UserID(ctx)
	actor := services.Actor{UserID: userID}

	view, err := cartService.GetCart(ctx.Request.Context(), actor)
	if err != nil {
		log.Println("Error loading cart for checkout:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	lines := make([]services.CheckoutLine, 0, len(view.Items))
	for _, item := range view.Items {
		lines = append(lines, services.CheckoutLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := orderService.CreateOrder(userID, lines, body.ShippingAddressID, body.BillingAddressID, shippingFee(), 0, ctx.ClientIP())
	if err != nil {
		status, message := serviceErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Error creating order:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}

	if err := cartService.ClearCart(userID); err != nil {
		log.Println("Error clearing cart after checkout:", err)
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		log.Println("Error loading user for payment:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	var address models.Address
	if err := initializers.DB.First(&address, body.ShippingAddressID).Error; err != nil {
		log.Println("Error loading address for payment:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	session, err := paymentClient.StartCheckout(order, &user, &address)
	if err != nil {
		// the order exists with payment pending; the buyer can retry from
		// their order history
		log.Println("Error starting payment session:", err)
		sendJSONResponse(ctx, http.StatusBadGateway, gin.H{
			"success":     false,
			"message":     "payment provider unavailable",
			"orderNumber": order.OrderNumber,
		})
		return
	}

	if err := initializers.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumn("basket_id", session.BasketID).Error; err != nil {
		log.Println("Error saving basket id:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success":     true,
		"orderNumber": order.OrderNumber,
		"redirectUrl": session.RedirectURL,
	})
}

// PaymentCallback is hit by the gateway redirect after the buyer completes or
// abandons payment. It verifies the result server side before recording it.
func PaymentCallback(ctx *gin.Context) {
	basketID := ctx.Query("OrderTrackingId")
	orderNumber := ctx.Query("OrderMerchantReference")
	if basketID == "" || orderNumber == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result, err := paymentClient.RetrievePaymentResult(basketID)
	if err != nil {
		log.Println("Error retrieving payment result:", err)
		status, message := serviceErrorStatus(err)
		sendErrorResponse(ctx, status, message)
		return
	}

	order, err := orderService.MarkPaymentResult(orderNumber, basketID, *result)
	if err != nil {
		status, message := serviceErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Error recording payment result:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}

	if order.PaymentStatus == models.PaymentPaid && order.User != nil {
		go func(order models.Order, user models.User) {
			if err := sendOrderConfirmationEmail(&order, &user); err != nil {
				log.Println("Error sending order confirmation email:", err)
			}
		}(*order, *order.User)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":       true,
		"orderNumber":   order.OrderNumber,
		"paymentStatus": order.PaymentStatus,
	})
}

// GetMyOrders returns the authenticated user's order history.
func GetMyOrders(ctx *gin.Context) {
	orders, err := orderService.OrdersForUser(middlewares.UserID(ctx))
	if err != nil {
		log.Println("Error loading orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendDataResponse(ctx, http.StatusOK, orders)
}

// GetMyOrder returns a single order; other users' orders read as not found.
func GetMyOrder(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := orderService.OrderForUser(uint(orderID), middlewares.UserID(ctx))
	if err != nil {
		status, message := serviceErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Error loading order:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}
	sendDataResponse(ctx, http.StatusOK, order)
}
