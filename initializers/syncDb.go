package initializers

import (
	"log"

	"github.com/ekomponents/elektrokomp-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductAttribute{},
		&models.PriceTier{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favorite{},
		&models.Slider{},
	)
	if err != nil {
		log.Fatal("Database migration failed:", err)
	}
	log.Println("Database synced successfully.")
}
