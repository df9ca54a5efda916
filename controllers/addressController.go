package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
	"github.com/ekomponents/elektrokomp-api/models"
)

// GetAddresses lists the authenticated user's addresses.
func GetAddresses(ctx *gin.Context) {
	var addresses []models.Address
	err := initializers.DB.Where("user_id = ?", middlewares.UserID(ctx)).
		Order("`default` DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		log.Println("Error loading addresses:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendDataResponse(ctx, http.StatusOK, addresses)
}

// CreateAddress adds an address for the authenticated user. Marking it as
// default clears the flag on the user's other addresses.
func CreateAddress(ctx *gin.Context) {
	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	address.ID = 0
	address.UserID = middlewares.UserID(ctx)

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if address.Default {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", address.UserID).
				Update("default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		log.Println("Error creating address:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "data": address})
}

// UpdateAddress updates one of the user's own addresses.
func UpdateAddress(ctx *gin.Context) {
	addressID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body models.Address
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	userID := middlewares.UserID(ctx)
	var address models.Address
	if err := initializers.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "address not found")
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if body.Default && !address.Default {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]any{
			"title":        body.Title,
			"full_name":    body.FullName,
			"phone":        body.Phone,
			"city":         body.City,
			"district":     body.District,
			"address_text": body.AddressText,
			"postal_code":  body.PostalCode,
			"default":      body.Default,
		}).Error
	})
	if err != nil {
		log.Println("Error updating address:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "address updated"})
}

// DeleteAddress removes one of the user's own addresses. Orders keep their
// address references through soft deletion.
func DeleteAddress(ctx *gin.Context) {
	addressID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Where("user_id = ?", middlewares.UserID(ctx)).
		Delete(&models.Address{}, addressID)
	if result.Error != nil {
		log.Println("Error deleting address:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "address not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "address deleted"})
}
