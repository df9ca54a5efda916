package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/autocomplete", controllers.Autocomplete)
	server.GET("/products/:slug", controllers.GetProductBySlug)
	server.GET("/categories", controllers.GetCategories)
	server.GET("/brands", controllers.GetBrands)
}
