package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-api/config"
	"github.com/motoshop/motoshop-api/middleware"
	"github.com/motoshop/motoshop-api/models"
)

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login - verifies admin credentials and
// establishes a session. Failures are reported with a single generic code so
// the response never discloses whether the username exists.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
			},
		})
		return
	}

	db := config.GetDB()
	var admin models.AdminUser
	if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid username or password",
			},
		})
		return
	}

	if !admin.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid username or password",
			},
		})
		return
	}

	middleware.CreateSession(c, admin.Username)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"username": admin.Username,
		},
	})
}

// Logout handles POST /api/v1/auth/logout - clears the admin session
func Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Logged out",
		},
	})
}
