// internal/services/helpers_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anenterprise-lab/pet-food-backend/internal/config"
	"github.com/anenterprise-lab/pet-food-backend/internal/models"
)

// newTestDB opens a fresh in-memory database migrated with the full
// schema. Each test gets its own named database so suites don't bleed
// state into each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared-cache memory DB alive.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Pet{},
		&models.PetMood{},
		&models.Memory{},
		&models.B2BLead{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, isAdmin bool) *models.User {
	t.Helper()

	user := &models.User{
		Name:    name,
		Email:   email,
		IsAdmin: isAdmin,
	}
	require.NoError(t, user.SetPassword("hunter2!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sku, name, barcode string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Sku:         sku,
		Name:        name,
		Description: "Test product",
		Category:    "dog-food",
		Price:       price,
		Variety:     "Chicken",
		StockLevel:  stock,
		Barcode:     barcode,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
