package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/repositories"
	"github.com/ekomponents/elektrokomp-api/services"
	"github.com/ekomponents/elektrokomp-api/utils"
)

const (
	maxProductImages    = 10
	maxImageSizeBytes   = 5 << 20
	maxPDFSizeBytes     = 10 << 20
	maxTiersPerProduct  = 10
	defaultProductsPage = 12
)

var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error":   errMsg,
	})
}

func parseProductFilter(ctx *gin.Context) repositories.ProductFilter {
	filter := repositories.ProductFilter{
		Query: strings.TrimSpace(ctx.Query("search")),
		Sort:  ctx.DefaultQuery("sort", "newest"),
	}

	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultProductsPage)))

	if categoryID, err := strconv.ParseUint(ctx.Query("category"), 10, 32); err == nil {
		filter.CategoryID = uint(categoryID)
	}
	for _, raw := range strings.Split(ctx.Query("brands"), ",") {
		if brandID, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32); err == nil {
			filter.BrandIDs = append(filter.BrandIDs, uint(brandID))
		}
	}
	if min, err := strconv.ParseFloat(ctx.Query("priceMin"), 64); err == nil {
		filter.PriceMin = &min
	}
	if max, err := strconv.ParseFloat(ctx.Query("priceMax"), 64); err == nil {
		filter.PriceMax = &max
	}
	for _, raw := range strings.Split(ctx.Query("packages"), ",") {
		if pkg := strings.TrimSpace(raw); pkg != "" {
			filter.PackageTypes = append(filter.PackageTypes, pkg)
		}
	}
	filter.InStockOnly = ctx.Query("inStock") == "true"

	return filter
}

// GetProducts lists active products with filtering, sorting and pagination.
func GetProducts(ctx *gin.Context) {
	filter := parseProductFilter(ctx)

	products, count, err := catalogService.Search(filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  filter.Page,
			"limit": filter.PerPage,
		},
	})
}

// GetProductBySlug returns a product detail page payload and bumps the view
// counter.
func GetProductBySlug(ctx *gin.Context) {
	product, err := catalogService.GetBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	similar, err := catalogService.SimilarProducts(product)
	if err != nil {
		log.Println("Error loading similar products:", err)
		similar = []models.Product{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":         true,
		"product":         product,
		"priceWithTax":    product.VATInclusivePrice(),
		"similarProducts": similar,
	})
}

// Autocomplete returns lightweight name/part-number matches for the search box.
func Autocomplete(ctx *gin.Context) {
	products, err := catalogService.Autocomplete(ctx.Query("q"))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to search products", err)
		return
	}
	sendDataResponse(ctx, http.StatusOK, products)
}

// Admin product handlers

func validateTiers(tiers []models.PriceTier) error {
	if len(tiers) > maxTiersPerProduct {
		return fmt.Errorf("at most %d price tiers are allowed", maxTiersPerProduct)
	}
	for _, tier := range tiers {
		if tier.MinQty < 1 || tier.Price <= 0 {
			return errors.New("tiers need a positive minimum quantity and price")
		}
		if tier.MaxQty != nil && *tier.MaxQty < tier.MinQty {
			return errors.New("tier max quantity is below its min quantity")
		}
	}
	if models.TiersOverlap(tiers) {
		return errors.New("price tier quantity ranges overlap")
	}
	return nil
}

// CreateProduct creates a product together with its attributes and price
// tiers in one transaction. The slug is always derived server side.
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if product.Price <= 0 {
		respondWithError(ctx, http.StatusBadRequest, "Price must be positive", nil)
		return
	}
	if product.MinOrderQty < 1 {
		product.MinOrderQty = 1
	}
	if err := validateTiers(product.PriceTiers); err != nil {
		respondWithError(ctx, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	product.Slug = utils.DeriveSlug(product.Name, product.PartNumber)
	product.ViewCount = 0

	if err := initializers.DB.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondWithError(ctx, http.StatusConflict, "A product with this part number already exists", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// UpdateProduct updates product fields and, when attributes or tiers are sent,
// replaces them wholesale inside the same transaction.
func UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var body models.Product
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateTiers(body.PriceTiers); err != nil {
		respondWithError(ctx, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to load product", err)
		}
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"category_id":       body.CategoryID,
			"brand_id":          body.BrandID,
			"part_number":       body.PartNumber,
			"name":              body.Name,
			"slug":              utils.DeriveSlug(body.Name, body.PartNumber),
			"description":       body.Description,
			"short_description": body.ShortDescription,
			"price":             body.Price,
			"tax_rate":          body.TaxRate,
			"stock":             body.Stock,
			"min_order_qty":     body.MinOrderQty,
			"package_type":      body.PackageType,
			"active":            body.Active,
			"featured":          body.Featured,
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}

		if body.Attributes != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductAttribute{}).Error; err != nil {
				return err
			}
			for i := range body.Attributes {
				body.Attributes[i].ID = 0
				body.Attributes[i].ProductID = product.ID
			}
			if len(body.Attributes) > 0 {
				if err := tx.Create(&body.Attributes).Error; err != nil {
					return err
				}
			}
		}

		if body.PriceTiers != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.PriceTier{}).Error; err != nil {
				return err
			}
			for i := range body.PriceTiers {
				body.PriceTiers[i].ID = 0
				body.PriceTiers[i].ProductID = product.ID
			}
			if len(body.PriceTiers) > 0 {
				if err := tx.Create(&body.PriceTiers).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondWithError(ctx, http.StatusConflict, "A product with this part number already exists", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Product updated"})
}

// DeleteProduct soft deletes a product; it disappears from the catalog but
// stays referenced by historical order items through their snapshots.
func DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	result := initializers.DB.Delete(&models.Product{}, productID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func uploadToS3(uploader *manager.Uploader, key string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

// UploadProductImages accepts up to 10 images of at most 5MB each and stores
// them on S3, recording one ProductImage row per successful upload.
func UploadProductImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}
	if len(files) > maxProductImages {
		respondWithError(ctx, http.StatusBadRequest, fmt.Sprintf("At most %d images per upload", maxProductImages), nil)
		return
	}

	productID, err := strconv.Atoi(ctx.PostForm("productId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	for _, file := range files {
		if file.Size > maxImageSizeBytes {
			respondWithError(ctx, http.StatusBadRequest, fmt.Sprintf("%s exceeds the 5MB image limit", file.Filename), nil)
			return
		}
		if !allowedImageTypes[file.Header.Get("Content-Type")] {
			respondWithError(ctx, http.StatusBadRequest, fmt.Sprintf("%s is not an allowed image type", file.Filename), nil)
			return
		}
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	for i, file := range files {
		key := fmt.Sprintf("products/%d-%s-%s", productID, time.Now().Format("20060102150405"), file.Filename)
		location, uploadErr := uploadToS3(uploader, key, file)
		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, location)

		productImage := models.ProductImage{
			ProductID: uint(productID),
			URL:       location,
			SortOrder: i,
		}
		if err := initializers.DB.Create(&productImage).Error; err != nil {
			// the object is already on S3, so only log the orphan
			log.Printf("Error saving image to database: %v", err)
		}
	}

	response := gin.H{
		"success": true,
		"message": "Files processed",
		"urls":    uploadedUrls,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}

// UploadDatasheet stores a single PDF datasheet of at most 10MB on S3 and
// links it to the product.
func UploadDatasheet(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.PostForm("productId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	file, err := ctx.FormFile("datasheet")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}
	if file.Size > maxPDFSizeBytes {
		respondWithError(ctx, http.StatusBadRequest, "Datasheet exceeds the 10MB limit", nil)
		return
	}
	if file.Header.Get("Content-Type") != "application/pdf" {
		respondWithError(ctx, http.StatusBadRequest, "Datasheet must be a PDF", nil)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	key := fmt.Sprintf("datasheets/%d-%s-%s", productID, time.Now().Format("20060102150405"), file.Filename)
	location, err := uploadToS3(uploader, key, file)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload datasheet", err)
		return
	}

	if err := initializers.DB.Model(&product).UpdateColumn("datasheet_url", location).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save datasheet URL", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "url": location})
}

// DeleteProductImage removes an image record. The S3 object is left in place.
func DeleteProductImage(ctx *gin.Context) {
	imageID, err := strconv.Atoi(ctx.Param("imageId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid image ID", err)
		return
	}

	result := initializers.DB.Delete(&models.ProductImage{}, imageID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete image", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Image not found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}
