package db

import "dealboard/internal/models"

func AutoMigrate(db *DB) error {
	return db.Gorm.AutoMigrate(
		&models.Category{},
		&models.Deal{},
		&models.Comment{},
	)
}
