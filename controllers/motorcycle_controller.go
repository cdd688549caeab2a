package controllers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-api/config"
	"github.com/motoshop/motoshop-api/models"
	"github.com/motoshop/motoshop-api/services"
	"github.com/motoshop/motoshop-api/utils"
)

// MotorcycleInput is the parsed form input for create/update operations
type MotorcycleInput struct {
	Brand       string
	Model       string
	Year        int
	Price       float64
	Description string
}

// parseMotorcycleForm reads the multipart form fields and validates them,
// returning either a valid input record or a map of per-field errors.
func parseMotorcycleForm(c *gin.Context) (*MotorcycleInput, map[string]string) {
	fieldErrors := make(map[string]string)

	brand := strings.TrimSpace(c.PostForm("brand"))
	if len(brand) < 2 || len(brand) > 100 {
		fieldErrors["brand"] = "Brand is required and must be between 2 and 100 characters"
	}

	model := strings.TrimSpace(c.PostForm("model"))
	if len(model) < 2 || len(model) > 100 {
		fieldErrors["model"] = "Model is required and must be between 2 and 100 characters"
	}

	year, err := strconv.Atoi(strings.TrimSpace(c.PostForm("year")))
	if err != nil || year < 1900 || year > 2100 {
		fieldErrors["year"] = "Year is required and must be between 1900 and 2100"
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
	if err != nil || price <= 0 {
		fieldErrors["price"] = "Price is required and must be greater than zero"
	}

	description := strings.TrimSpace(c.PostForm("description"))
	if len(description) > 500 {
		fieldErrors["description"] = "Description cannot exceed 500 characters"
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return &MotorcycleInput{
		Brand:       brand,
		Model:       model,
		Year:        year,
		Price:       price,
		Description: description,
	}, nil
}

// saveUploadedImage validates the upload and stores it under a slugified,
// collision-free name derived from brand and model. Returns the store key.
func saveUploadedImage(fileHeader *multipart.FileHeader, brand, model string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	store := services.GetImageStore()
	filename := utils.GenerateUniqueFilename(brand, model, fileHeader.Filename, store.Exists)
	if err := store.Save(data, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// ListMotorcycles handles GET /api/v1/admin/motorcycles - the full catalog
// for the management view
func ListMotorcycles(c *gin.Context) {
	db := config.GetDB()

	var motorcycles []models.Motorcycle
	if err := db.Order("id").Find(&motorcycles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load motorcycles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    motorcycles,
	})
}

// CreateMotorcycle handles POST /api/v1/admin/motorcycles - multipart form
// with the listing fields and an optional image
func CreateMotorcycle(c *gin.Context) {
	input, fieldErrors := parseMotorcycleForm(c)
	if fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid motorcycle data",
				"details": fieldErrors,
			},
		})
		return
	}

	imagePath := ""
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		saved, err := saveUploadedImage(fileHeader, input.Brand, input.Model)
		if err != nil {
			respondImageError(c, err)
			return
		}
		imagePath = saved
	}

	motorcycle := models.Motorcycle{
		Brand:       input.Brand,
		Model:       input.Model,
		Year:        input.Year,
		Price:       input.Price,
		Description: input.Description,
		ImagePath:   imagePath,
	}

	db := config.GetDB()
	if err := db.Create(&motorcycle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create motorcycle",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    motorcycle,
	})
}

// UpdateMotorcycle handles PUT /api/v1/admin/motorcycles/:id - in-place
// update; a replacement image deletes the previously stored file first
func UpdateMotorcycle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Motorcycle id must be a positive integer",
			},
		})
		return
	}

	db := config.GetDB()
	var motorcycle models.Motorcycle
	if err := db.First(&motorcycle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Motorcycle not found",
			},
		})
		return
	}

	input, fieldErrors := parseMotorcycleForm(c)
	if fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid motorcycle data",
				"details": fieldErrors,
			},
		})
		return
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		// Best-effort removal of the old file; the replacement is not
		// transactional with the database write
		if motorcycle.ImagePath != "" {
			store := services.GetImageStore()
			if store.Exists(motorcycle.ImagePath) {
				if err := store.Delete(motorcycle.ImagePath); err != nil {
					log.Printf("Failed to remove old image %q: %v", motorcycle.ImagePath, err)
				}
			} else {
				log.Printf("Old image %q no longer exists in the store", motorcycle.ImagePath)
			}
		}
		saved, err := saveUploadedImage(fileHeader, input.Brand, input.Model)
		if err != nil {
			respondImageError(c, err)
			return
		}
		motorcycle.ImagePath = saved
	}

	motorcycle.Brand = input.Brand
	motorcycle.Model = input.Model
	motorcycle.Year = input.Year
	motorcycle.Price = input.Price
	motorcycle.Description = input.Description

	if err := db.Save(&motorcycle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update motorcycle",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    motorcycle,
	})
}

// DeleteMotorcycle handles DELETE /api/v1/admin/motorcycles/:id - removes
// the row and, when present, the stored image file. A file-system failure is
// surfaced as a warning while the database mutation still proceeds.
func DeleteMotorcycle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Motorcycle id must be a positive integer",
			},
		})
		return
	}

	db := config.GetDB()
	var motorcycle models.Motorcycle
	if err := db.First(&motorcycle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Motorcycle not found",
			},
		})
		return
	}

	warning := ""
	if motorcycle.ImagePath != "" {
		store := services.GetImageStore()
		if store.Exists(motorcycle.ImagePath) {
			if err := store.Delete(motorcycle.ImagePath); err != nil {
				log.Printf("Failed to delete image %q: %v", motorcycle.ImagePath, err)
				warning = "Failed to delete the associated image file"
			}
		} else {
			log.Printf("Image %q not found in the store, removing database row only", motorcycle.ImagePath)
			warning = "The associated image was not found in the store; only the database row was removed"
		}
	}

	if err := db.Delete(&motorcycle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete motorcycle",
			},
		})
		return
	}

	response := gin.H{
		"success": true,
		"data": gin.H{
			"id": motorcycle.ID,
		},
	}
	if warning != "" {
		response["warning"] = warning
	}
	c.JSON(http.StatusOK, response)
}

// ExportCatalogPDF handles GET /api/v1/admin/motorcycles/export/pdf -
// generates the grouped catalog document and returns it as a download
func ExportCatalogPDF(c *gin.Context) {
	db := config.GetDB()

	var motorcycles []models.Motorcycle
	if err := db.Order("brand, model").Find(&motorcycles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load motorcycles for export",
			},
		})
		return
	}

	placeholder := ""
	if cfg := config.GetConfig(); cfg != nil {
		placeholder = cfg.PlaceholderImage
	}
	pdf, err := services.GenerateCatalogPDF(motorcycles, services.GetImageStore(), placeholder)
	if err != nil {
		log.Printf("Catalog PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PDF_GENERATION_ERROR",
				"message": "Failed to generate the catalog PDF",
			},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.CatalogPDFFilename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// respondImageError maps an image upload failure onto the response envelope
func respondImageError(c *gin.Context, err error) {
	if uploadErr, ok := err.(*utils.FileUploadError); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}
	log.Printf("Image upload failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UPLOAD_ERROR",
			"message": "Failed to store the uploaded image",
		},
	})
}
