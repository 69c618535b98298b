package database

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

var DB *gorm.DB

// Connect opens the MySQL connection and syncs the schema.
// The retry loop covers the common case of the DB container still booting.
func Connect(dsn string) error {
	var err error

	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Warn().Err(err).Msgf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return err
	}

	log.Info().Msg("✅ Successfully connected to MySQL!")

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Info().Msg("✅ Database Schema Synced!")
	return nil
}

// Migrate syncs the schema. Split out so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.ActivityLog{},
	)
}
