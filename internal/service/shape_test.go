package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ovenbird/cookbook-backend/internal/models"
)

func shapeTestRecipe() *models.Recipe {
	cuisineID := uint(3)
	return &models.Recipe{
		ID:          7,
		Title:       "Borscht",
		Description: "Beet soup",
		CookingTime: 90,
		Difficulty:  3,
		CuisineID:   &cuisineID,
		Cuisine:     &models.Cuisine{ID: 3, Name: "Ukrainian"},
		Allergens:   []models.Allergen{{ID: 1, Name: "Dairy"}},
		RecipeIngredients: []models.RecipeIngredient{
			{
				Quantity:    500,
				Measurement: models.Grams,
				Ingredient:  &models.Ingredient{ID: 11, Name: "Beet"},
			},
			{
				Quantity:    2,
				Measurement: models.Pieces,
				Ingredient:  nil,
			},
		},
	}
}

func TestParseInclude(t *testing.T) {
	includes := ParseInclude("cuisine, allergens,,bogus")
	assert.Contains(t, includes, "cuisine")
	assert.Contains(t, includes, "allergens")
	assert.Contains(t, includes, "bogus")
	assert.NotContains(t, includes, "")
	assert.Len(t, includes, 3)

	assert.Empty(t, ParseInclude(""))
}

func TestParseSelect(t *testing.T) {
	// absent parameter selects everything
	assert.Equal(t, RecipeBaseFields, ParseSelect("", RecipeBaseFields))

	// caller order is preserved, unknown fields dropped
	assert.Equal(t, []string{"title", "id"}, ParseSelect("title,bogus,id", RecipeBaseFields))

	// nothing valid selected is an empty list, not a fallback to everything
	assert.Empty(t, ParseSelect("bogus,nope", RecipeBaseFields))
}

func TestShapeSelectsBaseFields(t *testing.T) {
	recipe := shapeTestRecipe()

	shaped := Shape(recipe, []string{"id", "title"}, nil)
	data, err := json.Marshal(shaped)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, "Borscht", out["title"])
	assert.NotContains(t, out, "description")
	assert.NotContains(t, out, "cooking_time")
	assert.NotContains(t, out, "cuisine")
	assert.NotContains(t, out, "ingredients")
}

func TestShapeIncludesRelations(t *testing.T) {
	recipe := shapeTestRecipe()

	includes := ParseInclude("cuisine,allergens,ingredients")
	shaped := Shape(recipe, []string{"id"}, includes)
	data, err := json.Marshal(shaped)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(data, &out))

	cuisine := out["cuisine"].(map[string]any)
	assert.Equal(t, "Ukrainian", cuisine["name"])

	allergens := out["allergens"].([]any)
	assert.Len(t, allergens, 1)

	// the orphaned row is excluded
	ingredients := out["ingredients"].([]any)
	assert.Len(t, ingredients, 1)
	line := ingredients[0].(map[string]any)
	assert.Equal(t, "г", line["measurement"])
	assert.Equal(t, float64(500), line["quantity"])
}

func TestShapeNullCuisineIsPresent(t *testing.T) {
	recipe := shapeTestRecipe()
	recipe.Cuisine = nil
	recipe.CuisineID = nil

	shaped := Shape(recipe, []string{"id"}, ParseInclude("cuisine"))
	data, err := json.Marshal(shaped)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(data, &out))

	// included but unset renders as an explicit null, not an absent key
	value, present := out["cuisine"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestShapeUnknownIncludeIsIgnored(t *testing.T) {
	recipe := shapeTestRecipe()

	shaped := Shape(recipe, []string{"id"}, ParseInclude("bogus"))
	data, err := json.Marshal(shaped)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(data, &out))
	assert.Len(t, out, 1)
	assert.Contains(t, out, "id")
}

func TestShapeMany(t *testing.T) {
	recipes := []models.Recipe{*shapeTestRecipe(), *shapeTestRecipe()}
	shaped := ShapeMany(recipes, []string{"title"}, nil)
	assert.Len(t, shaped, 2)
	assert.Equal(t, "Borscht", *shaped[0].Title)
	assert.Nil(t, shaped[0].ID)
}
