package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/models"
)

// GetHome returns the homepage payload: active sliders, featured products,
// most viewed products and the top level category tree.
func GetHome(ctx *gin.Context) {
	var sliders []models.Slider
	if err := initializers.DB.Where("active = ?", true).
		Order("sort_order ASC").Find(&sliders).Error; err != nil {
		log.Println("Error loading sliders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sortedImages := func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}

	var featured []models.Product
	if err := initializers.DB.Where("active = ? AND featured = ?", true, true).
		Preload("Images", sortedImages).
		Order("created_at DESC").Limit(8).Find(&featured).Error; err != nil {
		log.Println("Error loading featured products:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var newest []models.Product
	if err := initializers.DB.Where("active = ?", true).
		Preload("Images", sortedImages).
		Order("created_at DESC").Limit(8).Find(&newest).Error; err != nil {
		log.Println("Error loading newest products:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var mostViewed []models.Product
	if err := initializers.DB.Where("active = ?", true).
		Preload("Images", sortedImages).
		Order("view_count DESC").Limit(8).Find(&mostViewed).Error; err != nil {
		log.Println("Error loading most viewed products:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var brands []models.Brand
	if err := initializers.DB.Where("active = ?", true).
		Order("name ASC").Find(&brands).Error; err != nil {
		log.Println("Error loading brands:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var categories []models.Category
	if err := initializers.DB.Where("parent_id IS NULL AND active = ?", true).
		Preload("Children", "active = ?", true).
		Order("sort_order ASC").Find(&categories).Error; err != nil {
		log.Println("Error loading categories:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":    true,
		"sliders":    sliders,
		"featured":   featured,
		"newest":     newest,
		"mostViewed": mostViewed,
		"brands":     brands,
		"categories": categories,
	})
}

// GetCategories returns the active category tree.
func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	err := initializers.DB.Where("parent_id IS NULL AND active = ?", true).
		Preload("Children", "active = ?", true).
		Order("sort_order ASC").
		Find(&categories).Error
	if err != nil {
		log.Println("Error loading categories:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendDataResponse(ctx, http.StatusOK, categories)
}

// GetBrands returns all active brands for the filter sidebar.
func GetBrands(ctx *gin.Context) {
	var brands []models.Brand
	err := initializers.DB.Where("active = ?", true).Order("name ASC").Find(&brands).Error
	if err != nil {
		log.Println("Error loading brands:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendDataResponse(ctx, http.StatusOK, brands)
}
