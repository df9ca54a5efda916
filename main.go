package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/controllers"
	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/repositories"
	"github.com/ekomponents/elektrokomp-api/routes"
	"github.com/ekomponents/elektrokomp-api/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.ConnectToRedis()
	initializers.SyncDatabase()
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	return []string{"http://localhost:4200", "https://www.elektrokomponent.com"}
}

func main() {
	productRepo := repositories.NewProductRepository(initializers.DB)
	cartRepo := repositories.NewCartRepository(initializers.DB)
	orderRepo := repositories.NewOrderRepository(initializers.DB)
	addressRepo := repositories.NewAddressRepository(initializers.DB)
	guestCart := services.NewGuestCartStore(initializers.Redis)

	controllers.Setup(
		services.NewCartService(productRepo, cartRepo, guestCart),
		services.NewOrderService(orderRepo, productRepo, addressRepo),
		services.NewCatalogService(productRepo),
		services.NewPaymentClient(),
		orderRepo,
	)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	routes.FavoriteRoutes(server)
	routes.AdminRoutes(server)

	server.Run()
}
