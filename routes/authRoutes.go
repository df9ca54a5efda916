package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	auth.Use(middlewares.CartSession())
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/verify-email/:activationToken", controllers.ActivateAccount)
		auth.POST("/forgot-password", controllers.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword)
	}
}
