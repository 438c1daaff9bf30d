package models

import (
	"time"
)

type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	Difficulty  int       `gorm:"not null;default:1" json:"difficulty"`
	CuisineID   *uint     `gorm:"index" json:"cuisine_id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`

	Cuisine           *Cuisine           `gorm:"foreignKey:CuisineID" json:"cuisine"`
	Allergens         []Allergen         `gorm:"many2many:recipe_allergens" json:"allergens"`
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Author            *User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// RecipeIngredient rows are owned by their recipe and replaced wholesale on
// every update; they are never patched one by one.
type RecipeIngredient struct {
	ID           uint        `gorm:"primarykey" json:"-"`
	RecipeID     uint        `gorm:"index;not null" json:"-"`
	IngredientID uint        `gorm:"index;not null" json:"-"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Measurement  Measurement `gorm:"not null" json:"measurement"`

	// Pointer so an orphaned row (ingredient deleted out from under the
	// recipe) preloads as nil and can be filtered from read paths.
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
}
