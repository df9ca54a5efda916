package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/repositories"
	"github.com/ekomponents/elektrokomp-api/utils"
)

const lowStockThreshold = 10

// startOfDay returns local midnight for t. Truncate would cut at the UTC day
// boundary, which is three hours off for a +03:00 shop.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetDashboard returns today's order and revenue counters plus totals and the
// low stock list for the admin landing page.
func GetDashboard(ctx *gin.Context) {
	db := initializers.DB
	dayStart := startOfDay(time.Now())

	var todayOrders int64
	if err := db.Model(&models.Order{}).
		Where("created_at >= ?", dayStart).Count(&todayOrders).Error; err != nil {
		log.Println("Error counting today's orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var todayRevenue float64
	if err := db.Model(&models.Order{}).
		Where("created_at >= ? AND payment_status = ?", dayStart, models.PaymentPaid).
		Select("COALESCE(SUM(grand_total), 0)").Scan(&todayRevenue).Error; err != nil {
		log.Println("Error summing today's revenue:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var totalOrders int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		log.Println("Error counting orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var totalCustomers int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).Count(&totalCustomers).Error; err != nil {
		log.Println("Error counting customers:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var pendingOrders int64
	if err := db.Model(&models.Order{}).
		Where("fulfillment_status = ?", models.FulfillmentPending).Count(&pendingOrders).Error; err != nil {
		log.Println("Error counting pending orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var lowStock []models.Product
	if err := db.Where("active = ? AND stock <= ?", true, lowStockThreshold).
		Order("stock ASC").Limit(20).Find(&lowStock).Error; err != nil {
		log.Println("Error loading low stock products:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":        true,
		"todayOrders":    todayOrders,
		"todayRevenue":   todayRevenue,
		"totalOrders":    totalOrders,
		"totalCustomers": totalCustomers,
		"pendingOrders":  pendingOrders,
		"lowStock":       lowStock,
	})
}

// GetOrders lists orders with status filtering and order number search.
func GetOrders(ctx *gin.Context) {
	filter := repositories.OrderFilter{
		FulfillmentStatus: ctx.Query("status"),
		Search:            ctx.Query("search"),
	}
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	orders, count, err := orderRepo.List(filter)
	if err != nil {
		log.Println("Error listing orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"metadata": gin.H{
			"total": count,
			"page":  filter.Page,
			"limit": filter.PerPage,
		},
	})
}

// GetOrder returns a full order for the admin detail page.
func GetOrder(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := orderRepo.ByID(uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "order not found")
		} else {
			log.Println("Error loading order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}
	sendDataResponse(ctx, http.StatusOK, order)
}

// UpdateOrderStatus applies a fulfillment transition. Moving to shipped sends
// the tracking email to the buyer.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	type StatusBody struct {
		Status         string `json:"status" binding:"required"`
		TrackingNumber string `json:"trackingNumber"`
		Carrier        string `json:"carrier"`
	}
	var body StatusBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := orderService.UpdateFulfillmentStatus(uint(orderID), body.Status, body.TrackingNumber, body.Carrier)
	if err != nil {
		status, message := serviceErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Error updating order status:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}

	if body.Status == models.FulfillmentShipped && order.TrackingNumber != "" && order.User != nil {
		go func(order models.Order, user models.User) {
			if err := sendShippingNotificationEmail(&order, &user); err != nil {
				log.Println("Error sending shipping notification:", err)
			}
		}(*order, *order.User)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":           true,
		"fulfillmentStatus": order.FulfillmentStatus,
	})
}

// GetCustomers lists customer accounts with search and pagination.
func GetCustomers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := initializers.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer)
	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR company_name LIKE ?",
			like, like, like, like)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Println("Error counting customers:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var customers []models.User
	err := query.Omit("password").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&customers).Error
	if err != nil {
		log.Println("Error listing customers:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":   true,
		"customers": customers,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

// SetCustomerActive enables or disables a customer account.
func SetCustomerActive(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	type ActiveBody struct {
		Active *bool `json:"active" binding:"required"`
	}
	var body ActiveBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.RoleCustomer).
		Update("active", *body.Active)
	if result.Error != nil {
		log.Println("Error updating customer:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "customer not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "active": *body.Active})
}

// Category handlers

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	category.Slug = utils.Slugify(category.Name)

	if err := initializers.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusConflict, "a category with this name already exists")
			return
		}
		log.Println("Error creating category:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "data": category})
}

func UpdateCategory(ctx *gin.Context) {
	categoryID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body models.Category
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Model(&models.Category{}).Where("id = ?", categoryID).
		Updates(map[string]any{
			"parent_id":   body.ParentID,
			"name":        body.Name,
			"slug":        utils.Slugify(body.Name),
			"icon":        body.Icon,
			"image_url":   body.ImageURL,
			"description": body.Description,
			"sort_order":  body.SortOrder,
			"active":      body.Active,
		})
	if result.Error != nil {
		log.Println("Error updating category:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "category not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "category updated"})
}

// DeleteCategory refuses to remove categories that still have products or
// child categories.
func DeleteCategory(ctx *gin.Context) {
	categoryID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var productCount int64
	initializers.DB.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&productCount)
	if productCount > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "category still has products")
		return
	}

	var childCount int64
	initializers.DB.Model(&models.Category{}).Where("parent_id = ?", categoryID).Count(&childCount)
	if childCount > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "category still has subcategories")
		return
	}

	result := initializers.DB.Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		log.Println("Error deleting category:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "category not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "category deleted"})
}

// Brand handlers

func CreateBrand(ctx *gin.Context) {
	var brand models.Brand
	if err := ctx.ShouldBindJSON(&brand); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	brand.Slug = utils.Slugify(brand.Name)

	if err := initializers.DB.Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusConflict, "a brand with this name already exists")
			return
		}
		log.Println("Error creating brand:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "data": brand})
}

func UpdateBrand(ctx *gin.Context) {
	brandID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body models.Brand
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Model(&models.Brand{}).Where("id = ?", brandID).
		Updates(map[string]any{
			"name":     body.Name,
			"slug":     utils.Slugify(body.Name),
			"logo_url": body.LogoURL,
			"active":   body.Active,
		})
	if result.Error != nil {
		log.Println("Error updating brand:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "brand not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "brand updated"})
}

func DeleteBrand(ctx *gin.Context) {
	brandID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var productCount int64
	initializers.DB.Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&productCount)
	if productCount > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "brand still has products")
		return
	}

	result := initializers.DB.Delete(&models.Brand{}, brandID)
	if result.Error != nil {
		log.Println("Error deleting brand:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "brand not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "brand deleted"})
}

// Slider handlers

func GetSliders(ctx *gin.Context) {
	var sliders []models.Slider
	err := initializers.DB.Order("sort_order ASC").Find(&sliders).Error
	if err != nil {
		log.Println("Error loading sliders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendDataResponse(ctx, http.StatusOK, sliders)
}

func CreateSlider(ctx *gin.Context) {
	var slider models.Slider
	if err := ctx.ShouldBindJSON(&slider); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := initializers.DB.Create(&slider).Error; err != nil {
		log.Println("Error creating slider:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "data": slider})
}

func UpdateSlider(ctx *gin.Context) {
	sliderID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body models.Slider
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Model(&models.Slider{}).Where("id = ?", sliderID).
		Updates(map[string]any{
			"title":       body.Title,
			"subtitle":    body.Subtitle,
			"description": body.Description,
			"image_url":   body.ImageURL,
			"link":        body.Link,
			"button_text": body.ButtonText,
			"sort_order":  body.SortOrder,
			"active":      body.Active,
		})
	if result.Error != nil {
		log.Println("Error updating slider:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "slider not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "slider updated"})
}

func DeleteSlider(ctx *gin.Context) {
	sliderID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Delete(&models.Slider{}, sliderID)
	if result.Error != nil {
		log.Println("Error deleting slider:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "slider not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "slider deleted"})
}
