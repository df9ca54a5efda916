package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin")
	admin.Use(middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", controllers.GetDashboard)

		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)
		admin.POST("/products/images", controllers.UploadProductImages)
		admin.DELETE("/products/images/:imageId", controllers.DeleteProductImage)
		admin.POST("/products/datasheet", controllers.UploadDatasheet)

		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/:id", controllers.GetOrder)
		admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

		admin.GET("/customers", controllers.GetCustomers)
		admin.PATCH("/customers/:id/active", controllers.SetCustomerActive)

		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		admin.POST("/brands", controllers.CreateBrand)
		admin.PUT("/brands/:id", controllers.UpdateBrand)
		admin.DELETE("/brands/:id", controllers.DeleteBrand)

		admin.GET("/sliders", controllers.GetSliders)
		admin.POST("/sliders", controllers.CreateSlider)
		admin.PUT("/sliders/:id", controllers.UpdateSlider)
		admin.DELETE("/sliders/:id", controllers.DeleteSlider)
	}
}
