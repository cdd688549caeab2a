package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-api/config"
	"github.com/motoshop/motoshop-api/models"
	"github.com/motoshop/motoshop-api/services"
)

// ListCatalog handles GET /api/v1/catalog - the public catalog with search,
// filters and pagination. All criteria are optional; malformed values are
// ignored rather than rejected.
func ListCatalog(c *gin.Context) {
	db := config.GetDB()

	var inventory []models.Motorcycle
	if err := db.Order("id").Find(&inventory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load catalog",
			},
		})
		return
	}

	filter := services.CatalogFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Brand:    strings.TrimSpace(c.Query("brand")),
		Year:     strings.TrimSpace(c.Query("year")),
		PriceMin: parsePriceParam(c.Query("price_min")),
		PriceMax: parsePriceParam(c.Query("price_max")),
		Page:     parsePageParam(c.Query("page")),
	}

	page := services.FilterCatalog(inventory, filter)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    page,
	})
}

// GetFeatured handles GET /api/v1/catalog/featured - the latest listings for
// the home page carrousel
func GetFeatured(c *gin.Context) {
	db := config.GetDB()

	var motorcycles []models.Motorcycle
	if err := db.Order("id desc").Limit(8).Find(&motorcycles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load featured motorcycles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    motorcycles,
	})
}

// GetMotorcycle handles GET /api/v1/catalog/:id - single listing detail
func GetMotorcycle(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    motorcycle,
	})
}

// parsePriceParam parses an optional price bound; malformed input is
// treated as absent.
func parsePriceParam(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parsePageParam parses the page number, defaulting to 1 on bad input; the
// filter pipeline clamps out-of-range values.
func parsePageParam(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}
