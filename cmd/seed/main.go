package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ovenbird/cookbook-backend/config"
	"github.com/ovenbird/cookbook-backend/internal/database"
	"github.com/ovenbird/cookbook-backend/internal/models"
)

var cuisines = []string{"Italian", "Japanese", "Mexican", "Indian", "French", "Thai"}

var allergens = []string{"Gluten", "Dairy", "Eggs", "Peanuts", "Tree nuts", "Soy", "Fish", "Shellfish"}

var ingredients = []string{
	"Spaghetti", "Tomato", "Garlic", "Olive oil", "Basil", "Parmesan",
	"Rice", "Nori", "Salmon", "Soy sauce", "Chicken", "Onion",
	"Coconut milk", "Curry paste", "Lime", "Cilantro", "Butter", "Flour",
	"Egg", "Milk", "Sugar", "Salt", "Black pepper", "Chili",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seed data applied")
}

func seed(db *gorm.DB) error {
	for _, name := range cuisines {
		if err := db.FirstOrCreate(&models.Cuisine{}, models.Cuisine{Name: name}).Error; err != nil {
			return err
		}
	}
	for _, name := range allergens {
		if err := db.FirstOrCreate(&models.Allergen{}, models.Allergen{Name: name}).Error; err != nil {
			return err
		}
	}
	for _, name := range ingredients {
		if err := db.FirstOrCreate(&models.Ingredient{}, models.Ingredient{Name: name}).Error; err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demo := models.User{
		FirstName:    "Demo",
		LastName:     "Cook",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Where(models.User{Email: demo.Email}).FirstOrCreate(&demo).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var italian models.Cuisine
	if err := db.Where("name = ?", "Italian").First(&italian).Error; err != nil {
		return err
	}
	var gluten models.Allergen
	if err := db.Where("name = ?", "Gluten").First(&gluten).Error; err != nil {
		return err
	}
	var spaghetti, tomato models.Ingredient
	if err := db.Where("name = ?", "Spaghetti").First(&spaghetti).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "Tomato").First(&tomato).Error; err != nil {
		return err
	}

	recipe := models.Recipe{
		Title:       "Spaghetti al Pomodoro",
		Description: "Simple pasta in a fresh tomato sauce.",
		CookingTime: 25,
		Difficulty:  2,
		CuisineID:   &italian.ID,
		AuthorID:    demo.ID,
		Allergens:   []models.Allergen{gluten},
		RecipeIngredients: []models.RecipeIngredient{
			{IngredientID: spaghetti.ID, Quantity: 400, Measurement: models.Grams},
			{IngredientID: tomato.ID, Quantity: 6, Measurement: models.Pieces},
		},
	}
	return db.Create(&recipe).Error
}
