package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/reportpilot/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Initialize opens the settings database, migrates the schema and
// seeds the singleton rows and the default admin user.
func Initialize(dbPath string) error {
	var initErr error
	once.Do(func() {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create database directory: %v", err)
			return
		}

		var err error
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			initErr = fmt.Errorf("failed to connect to database: %v", err)
			return
		}

		if err := Migrate(db); err != nil {
			initErr = err
			return
		}
	})

	return initErr
}

// Migrate runs the schema migration and default-row seeding on any
// gorm handle; tests use it against in-memory databases.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Settings{},
		&models.Connection{},
		&models.Repository{},
		&models.Design{},
		&models.EmailLog{},
		&models.DailySummaryConfig{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	return seedDefaults(db)
}

func seedDefaults(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		admin := models.User{Username: "admin"}
		if err := admin.SetPassword("admin"); err != nil {
			return err
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	var settings models.Settings
	if err := db.FirstOrCreate(&settings, models.Settings{ID: 1}).Error; err != nil {
		return err
	}
	if settings.SMTPPort == 0 {
		if err := db.Model(&settings).Update("smtp_port", 587).Error; err != nil {
			return err
		}
	}

	var summary models.DailySummaryConfig
	err := db.First(&summary, 1).Error
	if err == gorm.ErrRecordNotFound {
		summary = models.DailySummaryConfig{
			ID:           1,
			IsEnabled:    false,
			Subject:      "Cierre de Ventas Diario Empresa: %empresa%",
			ScheduleTime: "08:00",
			SQLQuery:     DefaultSummaryQuery,
		}
		return db.Create(&summary).Error
	}
	return err
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	if db == nil {
		panic("Database not initialized. Call Initialize() first")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %v", err)
	}

	return sqlDB.Close()
}
