package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetRoot)
	server.GET("/home", controllers.GetHome)
	server.NoRoute(controllers.NotFound)
}
