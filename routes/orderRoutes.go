package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	server.GET("/payment/callback", controllers.PaymentCallback)

	orders := server.Group("/")
	orders.Use(middlewares.RequireAuth())
	{
		orders.POST("/checkout", controllers.Checkout)
		orders.GET("/orders", controllers.GetMyOrders)
		orders.GET("/orders/:id", controllers.GetMyOrder)

		orders.GET("/addresses", controllers.GetAddresses)
		orders.POST("/addresses", controllers.CreateAddress)
		orders.PUT("/addresses/:id", controllers.UpdateAddress)
		orders.DELETE("/addresses/:id", controllers.DeleteAddress)
	}
}
