package database

import (
	"gorm.io/gorm"

	"github.com/ovenbird/cookbook-backend/internal/models"
)

// RunMigrations brings the schema up to date for every model the
// application persists.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Cuisine{},
		&models.Allergen{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Video{},
	)
}
