package services

import (
	"testing"

	"github.com/motoshop/motoshop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.AdminUser{}, &models.Motorcycle{}, &models.Invoice{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestEnsureAdminUser_RequiresExternalSecret(t *testing.T) {
	db := setupSetupTestDB(t)
	svc := NewSetupService(db)

	err := svc.EnsureAdminUser("admin", "")
	assert.ErrorIs(t, err, ErrMissingAdminPassword)

	var count int64
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no account may be created without a password")
}

func TestEnsureAdminUser_ProvisionsOnce(t *testing.T) {
	db := setupSetupTestDB(t)
	svc := NewSetupService(db)

	require.NoError(t, svc.EnsureAdminUser("admin", "first-secret"))

	var admin models.AdminUser
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.CheckPassword("first-secret"))
	assert.NotEqual(t, "first-secret", admin.PasswordHash, "password must be stored hashed")

	// A second run with a different password must not overwrite the account
	require.NoError(t, svc.EnsureAdminUser("admin", "second-secret"))
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.CheckPassword("first-secret"))
	assert.False(t, admin.CheckPassword("second-secret"))
}

func TestSeedCatalog(t *testing.T) {
	db := setupSetupTestDB(t)
	svc := NewSetupService(db)

	require.NoError(t, svc.SeedCatalog())

	var count int64
	require.NoError(t, db.Model(&models.Motorcycle{}).Count(&count).Error)
	assert.Equal(t, int64(20), count)

	// Seeding is idempotent
	require.NoError(t, svc.SeedCatalog())
	require.NoError(t, db.Model(&models.Motorcycle{}).Count(&count).Error)
	assert.Equal(t, int64(20), count)
}

func TestSeedCatalog_LeavesExistingDataAlone(t *testing.T) {
	db := setupSetupTestDB(t)
	require.NoError(t, db.Create(&models.Motorcycle{Brand: "Honda", Model: "CB1000R", Year: 2024, Price: 12999}).Error)

	svc := NewSetupService(db)
	require.NoError(t, svc.SeedCatalog())

	var count int64
	require.NoError(t, db.Model(&models.Motorcycle{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeedInvoices(t *testing.T) {
	db := setupSetupTestDB(t)
	svc := NewSetupService(db)

	require.NoError(t, svc.SeedInvoices())

	var invoices []models.Invoice
	require.NoError(t, db.Order("id").Find(&invoices).Error)
	require.Len(t, invoices, 2)
	assert.Equal(t, "INV-20250615-0001", invoices[0].InvoiceNumber)

	require.NoError(t, svc.SeedInvoices())
	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
