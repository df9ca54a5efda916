package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
)

func FavoriteRoutes(server *gin.Engine) {
	favorites := server.Group("/favorites")
	favorites.Use(middlewares.RequireAuth())
	{
		favorites.GET("", controllers.GetFavorites)
		favorites.POST("/toggle", controllers.ToggleFavorite)
		favorites.POST("/:productId", controllers.ToggleFavoriteByID)
	}
}
