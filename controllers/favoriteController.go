package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
	"github.com/ekomponents/elektrokomp-api/models"
)

// ToggleFavorite adds the product named in the request body to the user's
// favorites, or removes it if already present. The response reports the
// resulting state.
func ToggleFavorite(ctx *gin.Context) {
	var body struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	toggleFavorite(ctx, body.ProductID)
}

// ToggleFavoriteByID is the path-parameter variant of ToggleFavorite.
func ToggleFavoriteByID(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("productId"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	toggleFavorite(ctx, uint(productID))
}

func toggleFavorite(ctx *gin.Context, productID uint) {
	userID := middlewares.UserID(ctx)

	var product models.Product
	if err := initializers.DB.Where("id = ? AND active = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "product not found")
		} else {
			log.Println("Error loading product:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var favorite models.Favorite
	err := initializers.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error
	switch {
	case err == nil:
		if err := initializers.DB.Unscoped().Delete(&favorite).Error; err != nil {
			log.Println("Error removing favorite:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "favorited": false})
	case errors.Is(err, gorm.ErrRecordNotFound):
		favorite = models.Favorite{UserID: userID, ProductID: productID}
		if err := initializers.DB.Create(&favorite).Error; err != nil {
			// a concurrent toggle won the race; report the state it produced
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "favorited": true})
				return
			}
			log.Println("Error adding favorite:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "favorited": true})
	default:
		log.Println("Error checking favorite:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

// GetFavorites lists the user's favorited products, skipping ones that have
// since been deactivated.
func GetFavorites(ctx *gin.Context) {
	var favorites []models.Favorite
	err := initializers.DB.Where("user_id = ?", middlewares.UserID(ctx)).
		Preload("Product", "active = ?", true).
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		log.Println("Error loading favorites:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	products := make([]models.Product, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.Product != nil {
			products = append(products, *favorite.Product)
		}
	}
	sendDataResponse(ctx, http.StatusOK, products)
}
