package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
)

// Cart routes serve both guests and authenticated users: the session cookie
// carries the guest cart, a bearer token switches to the persisted cart.
func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart")
	cart.Use(middlewares.CartSession(), middlewares.OptionalAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/items", controllers.AddCartItem)
		cart.PUT("/items", controllers.UpdateCartItem)
		cart.DELETE("/items/:productId", controllers.RemoveCartItem)
	}
}
