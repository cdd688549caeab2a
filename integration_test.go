package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/motoshop/motoshop-api/config"
	"github.com/motoshop/motoshop-api/middleware"
	"github.com/motoshop/motoshop-api/models"
	"github.com/motoshop/motoshop-api/services"
)

// setupIntegrationEnv wires an in-memory database, test configuration and a
// mock image store, then provisions sample data the way startup does.
func setupIntegrationEnv(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}, &models.Motorcycle{}, &models.Invoice{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:            "test",
		SessionSecret:    "integration-secret",
		PlaceholderImage: "placeholder.jpg",
	})

	store := services.NewMockImageStore()
	store.SetAsMockForTesting()

	setup := services.NewSetupService(db)
	if err := setup.EnsureAdminUser("admin", "integration-password"); err != nil {
		t.Fatalf("Failed to provision admin user: %v", err)
	}
	if err := setup.SeedCatalog(); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
	if err := setup.SeedInvoices(); err != nil {
		t.Fatalf("Failed to seed invoices: %v", err)
	}
	return db
}

// login performs a real login request and returns the session cookie
func login(t *testing.T, router *gin.Engine) *http.Cookie {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"username": "admin",
		"password": "integration-password",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestHealthEndpointIntegration(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "MotoShop API is running", response["message"])
}

func TestPublicCatalogIntegration(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()

	// The seeded catalog fills more than two pages at nine per page
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(20), data["total_count"])
	assert.Equal(t, float64(3), data["total_pages"])
	assert.Len(t, data["items"].([]interface{}), 9)
}

func TestAdminAreaRequiresSession(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()

	adminPaths := []string{
		"/api/v1/admin/motorcycles",
		"/api/v1/admin/motorcycles/export/pdf",
		"/api/v1/admin/invoices",
		"/api/v1/admin/invoices/1",
	}

	for _, path := range adminPaths {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	}
}

func TestAdminWorkflowIntegration(t *testing.T) {
	db := setupIntegrationEnv(t)
	router := setupRouter()
	cookie := login(t, router)

	// Create a listing through the admin form endpoint
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range map[string]string{
		"brand":       "Triumph",
		"model":       "Street Triple RS",
		"year":        "2025",
		"price":       "13495",
		"description": "Triple de media cilindrada",
	} {
		assert.NoError(t, writer.WriteField(key, value))
	}
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/motorcycles", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResponse))
	created := createResponse["data"].(map[string]interface{})
	createdID := int(created["id"].(float64))

	// The new listing is visible on the public detail endpoint
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/catalog/%d", createdID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Street Triple RS")

	// Delete it again
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/motorcycles/%d", createdID), nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Motorcycle{}).Where("id = ?", createdID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestInvoiceWorkflowIntegration(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()
	cookie := login(t, router)

	payload, _ := json.Marshal(map[string]interface{}{
		"customer_name":     "Carlos Ruiz",
		"invoice_date":      "2026-09-01",
		"items_description": "Kawasaki Z650 2024",
		"subtotal_amount":   7749.0,
		"tax_rate":          21.0,
		"tax_amount":        1627.29,
		"total_amount":      9376.29,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/invoices", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})

	// Two seeded invoices exist, so the new number continues the sequence
	expectedNumber := fmt.Sprintf("INV-%s-0003", time.Now().Format("20060102"))
	assert.Equal(t, expectedNumber, data["invoice_number"])

	// And it is readable back through the admin area
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/admin/invoices/%v", data["id"]), nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Carlos Ruiz")
}

func TestCatalogExportIntegration(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()
	cookie := login(t, router)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/motorcycles/export/pdf", nil)
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), services.CatalogPDFFilename)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestLogoutEndsSession(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()
	cookie := login(t, router)

	// Logout clears the cookie server-side
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			cleared = c
		}
	}
	assert.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Value)
}
