package service

import (
	"strings"

	"github.com/ovenbird/cookbook-backend/internal/models"
)

// The shaper is a pure projection layer: it operates on recipes that are
// already hydrated and never touches the store.

// RecipeBaseFields is the full set of selectable base fields, in response
// order.
var RecipeBaseFields = []string{"id", "title", "description", "cooking_time", "difficulty"}

const (
	IncludeCuisine     = "cuisine"
	IncludeAllergens   = "allergens"
	IncludeIngredients = "ingredients"
)

// ParseInclude splits a comma-separated include parameter into a set.
// Unrecognized tokens are kept in the set but contribute nothing to the
// shaped output.
func ParseInclude(raw string) map[string]struct{} {
	includes := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		includes[token] = struct{}{}
	}
	return includes
}

// ParseSelect filters a comma-separated select parameter against the allowed
// field list, preserving the caller-specified order. An absent parameter
// selects everything; a selection with no valid entries is an empty (valid)
// field list.
func ParseSelect(raw string, allowed []string) []string {
	if strings.TrimSpace(raw) == "" {
		out := make([]string, len(allowed))
		copy(out, allowed)
		return out
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		allowedSet[f] = true
	}

	selected := []string{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" || !allowedSet[token] {
			continue
		}
		selected = append(selected, token)
	}
	return selected
}

// NamedRef is a {id, name} projection of a catalog entity.
type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ShapedIngredient is one ingredient line with its display measurement.
type ShapedIngredient struct {
	Ingredient  NamedRef `json:"ingredient"`
	Quantity    float64  `json:"quantity"`
	Measurement string   `json:"measurement"`
}

// ShapedRecipe holds the client-selected subset of a recipe. Base fields and
// include keys are pointers so an unselected field is absent from the JSON
// output rather than rendered as a zero value.
type ShapedRecipe struct {
	ID          *uint   `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	CookingTime *int    `json:"cooking_time,omitempty"`
	Difficulty  *int    `json:"difficulty,omitempty"`

	Cuisine     **NamedRef          `json:"cuisine,omitempty"`
	Allergens   *[]NamedRef         `json:"allergens,omitempty"`
	Ingredients *[]ShapedIngredient `json:"ingredients,omitempty"`
}

// Shape projects a hydrated recipe onto the selected fields and requested
// includes.
func Shape(recipe *models.Recipe, fields []string, includes map[string]struct{}) ShapedRecipe {
	var shaped ShapedRecipe
	for _, field := range fields {
		switch field {
		case "id":
			id := recipe.ID
			shaped.ID = &id
		case "title":
			title := recipe.Title
			shaped.Title = &title
		case "description":
			description := recipe.Description
			shaped.Description = &description
		case "cooking_time":
			cookingTime := recipe.CookingTime
			shaped.CookingTime = &cookingTime
		case "difficulty":
			difficulty := recipe.Difficulty
			shaped.Difficulty = &difficulty
		}
	}

	if _, ok := includes[IncludeCuisine]; ok {
		var cuisine *NamedRef
		if recipe.Cuisine != nil {
			cuisine = &NamedRef{ID: recipe.Cuisine.ID, Name: recipe.Cuisine.Name}
		}
		shaped.Cuisine = &cuisine
	}

	if _, ok := includes[IncludeAllergens]; ok {
		allergens := make([]NamedRef, 0, len(recipe.Allergens))
		for _, a := range recipe.Allergens {
			allergens = append(allergens, NamedRef{ID: a.ID, Name: a.Name})
		}
		shaped.Allergens = &allergens
	}

	if _, ok := includes[IncludeIngredients]; ok {
		ingredients := make([]ShapedIngredient, 0, len(recipe.RecipeIngredients))
		for _, ri := range recipe.RecipeIngredients {
			// Orphaned rows are excluded, never emitted as null entries.
			if ri.Ingredient == nil {
				continue
			}
			ingredients = append(ingredients, ShapedIngredient{
				Ingredient:  NamedRef{ID: ri.Ingredient.ID, Name: ri.Ingredient.Name},
				Quantity:    ri.Quantity,
				Measurement: ri.Measurement.Label(),
			})
		}
		shaped.Ingredients = &ingredients
	}

	return shaped
}

// ShapeMany applies Shape element-wise.
func ShapeMany(recipes []models.Recipe, fields []string, includes map[string]struct{}) []ShapedRecipe {
	shaped := make([]ShapedRecipe, len(recipes))
	for i := range recipes {
		shaped[i] = Shape(&recipes[i], fields, includes)
	}
	return shaped
}
