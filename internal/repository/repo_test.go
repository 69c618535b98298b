package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.ActivityLog{},
	))
	return db
}

func seedCatalogue(t *testing.T, db *gorm.DB) (models.Category, models.Product, models.Product) {
	t.Helper()
	category := models.Category{Name: "Drinks"}
	require.NoError(t, db.Create(&category).Error)

	espresso := models.Product{Name: "Espresso", CategoryID: category.ID, Status: models.ProductActive}
	croissant := models.Product{Name: "Croissant", CategoryID: category.ID, Status: models.ProductActive}
	require.NoError(t, db.Create(&espresso).Error)
	require.NoError(t, db.Create(&croissant).Error)
	return category, espresso, croissant
}
