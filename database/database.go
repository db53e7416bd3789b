package database

import (
	"log"

	"hrms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres, migrates the schema and seeds the default
// operator. The handle is passed explicitly into services and middleware;
// there is no package-level database state.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema and seeds the default operator. Exported so
// tests can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.Employee{}, &models.Attendance{}, &models.Operator{})
	if err != nil {
		return err
	}

	return seedDefaultOperator(db)
}

func seedDefaultOperator(db *gorm.DB) error {
	var count int64
	db.Model(&models.Operator{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Operator{
		Username:     "admin",
		FullName:     "Administrator",
		PasswordHash: string(hashedPassword),
	}

	result := db.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	log.Println("Default operator created (username: admin, password: admin)")
	return nil
}
