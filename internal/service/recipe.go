package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ovenbird/cookbook-backend/internal/models"
)

// RecipeFilter carries the client-provided listing criteria. All fields are
// optional and combine with AND.
type RecipeFilter struct {
	Title        string
	IngredientID *uint
	OrderBy      []string
}

// recipeSortColumns maps the accepted sort fields to their columns. Unknown
// fields are rejected rather than silently accepted.
var recipeSortColumns = map[string]string{
	"id":           "recipes.id",
	"title":        "recipes.title",
	"cooking_time": "recipes.cooking_time",
	"difficulty":   "recipes.difficulty",
}

var recipeSortFields = []string{"id", "title", "cooking_time", "difficulty"}

var defaultRecipeOrder = []string{"id", "difficulty"}

// RecipeInput is one recipe-with-ingredients aggregate as submitted by a
// client. The ingredient list always replaces whatever the recipe had before.
type RecipeInput struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	CookingTime int                     `json:"cooking_time"`
	Difficulty  int                     `json:"difficulty"`
	CuisineID   *uint                   `json:"cuisine_id"`
	AllergenIDs []uint                  `json:"allergen_ids"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

type RecipeIngredientInput struct {
	IngredientID uint               `json:"ingredient_id" binding:"required"`
	Quantity     float64            `json:"quantity" binding:"required,gt=0"`
	Measurement  models.Measurement `json:"measurement"`
}

// RecipeService builds recipe listing queries and applies recipe mutations.
// Every mutation runs in a single transaction so a failed reference check
// leaves nothing persisted.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func preloadRecipeRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Cuisine").
		Preload("Allergens").
		// Rows whose ingredient was deleted out from under the recipe are
		// never surfaced on any read path.
		Preload("RecipeIngredients", "ingredient_id IN (SELECT id FROM ingredients)").
		Preload("RecipeIngredients.Ingredient").
		Preload("Author")
}

// ListQuery returns the filtered, sorted listing query plus a matching count
// query. The base query outer-joins through recipe_ingredients so recipes
// without ingredients still appear, deduplicated by recipe identity.
func (s *RecipeService) ListQuery(ctx context.Context, filter RecipeFilter) (listQuery, countQuery *gorm.DB, err error) {
	base := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id")

	if filter.Title != "" {
		base = base.Where("recipes.title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.IngredientID != nil {
		base = base.Where("recipe_ingredients.ingredient_id = ?", *filter.IngredientID)
	}

	order, err := buildRecipeOrder(filter.OrderBy)
	if err != nil {
		return nil, nil, err
	}

	listQuery = preloadRecipeRelations(base.Session(&gorm.Session{}).Distinct("recipes.*"))
	for _, expr := range order {
		listQuery = listQuery.Order(expr)
	}
	countQuery = base.Session(&gorm.Session{}).Distinct("recipes.id")

	return listQuery, countQuery, nil
}

// buildRecipeOrder validates the sort field list and translates it to ORDER BY
// clauses. A "-" prefix requests descending order.
func buildRecipeOrder(fields []string) ([]string, error) {
	if len(fields) == 0 {
		fields = defaultRecipeOrder
	}

	var order []string
	for _, raw := range fields {
		field := strings.TrimSpace(raw)
		if field == "" {
			continue
		}
		direction := "ASC"
		switch field[0] {
		case '-':
			direction = "DESC"
			field = field[1:]
		case '+':
			field = field[1:]
		}
		if field == "" {
			// a bare prefix names no field at all
			return nil, &InvalidSortFieldError{Field: strings.TrimSpace(raw), Allowed: recipeSortFields}
		}
		column, ok := recipeSortColumns[field]
		if !ok {
			return nil, &InvalidSortFieldError{Field: field, Allowed: recipeSortFields}
		}
		order = append(order, column+" "+direction)
	}
	return order, nil
}

// GetByID returns a recipe with all relations eagerly loaded.
func (s *RecipeService) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := preloadRecipeRelations(s.db.WithContext(ctx)).First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ByIngredient lists the recipes containing an ingredient, id ascending, with
// the full relation set loaded. The ingredient itself must exist.
func (s *RecipeService) ByIngredient(ctx context.Context, ingredientID uint) ([]models.Recipe, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &EntityNotFoundError{Entity: "ingredient", ID: ingredientID}
		}
		return nil, err
	}

	var recipes []models.Recipe
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Where("recipe_ingredients.ingredient_id = ?", ingredientID).
		Distinct("recipes.*").
		Order("recipes.id")
	if err := preloadRecipeRelations(query).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// resolvedRefs holds the entities a recipe input references, verified to
// exist before any write happens.
type resolvedRefs struct {
	allergens []models.Allergen
}

func resolveRecipeRefs(tx *gorm.DB, input RecipeInput) (*resolvedRefs, error) {
	if input.CuisineID != nil {
		var cuisine models.Cuisine
		if err := tx.First(&cuisine, *input.CuisineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCuisineNotFound
			}
			return nil, err
		}
	}

	refs := &resolvedRefs{}
	if len(input.AllergenIDs) > 0 {
		if err := tx.Where("id IN ?", input.AllergenIDs).Find(&refs.allergens).Error; err != nil {
			return nil, err
		}
		if len(refs.allergens) != countUnique(input.AllergenIDs) {
			found := make(map[uint]bool, len(refs.allergens))
			for _, a := range refs.allergens {
				found[a.ID] = true
			}
			return nil, &MissingIDsError{Entity: "allergen", IDs: missingIDs(input.AllergenIDs, found)}
		}
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, line.IngredientID)
	}
	if len(ingredientIDs) > 0 {
		var ingredients []models.Ingredient
		if err := tx.Where("id IN ?", ingredientIDs).Find(&ingredients).Error; err != nil {
			return nil, err
		}
		if len(ingredients) != countUnique(ingredientIDs) {
			found := make(map[uint]bool, len(ingredients))
			for _, i := range ingredients {
				found[i.ID] = true
			}
			return nil, &MissingIDsError{Entity: "ingredient", IDs: missingIDs(ingredientIDs, found)}
		}
	}

	for _, line := range input.Ingredients {
		if !line.Measurement.Valid() {
			return nil, &models.InvalidMeasurementError{
				Value:   line.Measurement.String(),
				Allowed: models.AllowedMeasurements,
			}
		}
	}

	return refs, nil
}

func countUnique(ids []uint) int {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}

// Create validates every referenced entity, then persists the recipe and its
// ingredient rows atomically with the caller as author.
func (s *RecipeService) Create(ctx context.Context, input RecipeInput, author *models.User) (*models.Recipe, error) {
	var recipeID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := resolveRecipeRefs(tx, input)
		if err != nil {
			return err
		}

		recipe := models.Recipe{
			Title:       input.Title,
			Description: input.Description,
			CookingTime: input.CookingTime,
			Difficulty:  input.Difficulty,
			CuisineID:   input.CuisineID,
			AuthorID:    author.ID,
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if len(refs.allergens) > 0 {
			if err := tx.Model(&recipe).Association("Allergens").Append(&refs.allergens); err != nil {
				return err
			}
		}
		if err := insertIngredientRows(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}

		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, recipeID)
}

// Update re-runs the same reference resolution as Create, then replaces the
// cuisine reference, the allergen set and the whole ingredient list. Only the
// recipe's author may update it.
func (s *RecipeService) Update(ctx context.Context, id uint, input RecipeInput, author *models.User) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.loadOwned(tx, id, author)
		if err != nil {
			return err
		}

		refs, err := resolveRecipeRefs(tx, input)
		if err != nil {
			return err
		}

		recipe.Title = input.Title
		recipe.Description = input.Description
		recipe.CookingTime = input.CookingTime
		recipe.Difficulty = input.Difficulty
		recipe.CuisineID = input.CuisineID
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Allergens").Replace(&refs.allergens); err != nil {
			return err
		}

		// Full replace of the owned ingredient rows, never a diff.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertIngredientRows(tx, recipe.ID, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a recipe and everything it owns. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, id uint, author *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.loadOwned(tx, id, author)
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Allergens").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// loadOwned asserts the ownership rule shared by Update and Delete.
func (s *RecipeService) loadOwned(tx *gorm.DB, id uint, author *models.User) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := tx.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != author.ID {
		return nil, ErrNotRecipeAuthor
	}
	return &recipe, nil
}

func insertIngredientRows(tx *gorm.DB, recipeID uint, lines []RecipeIngredientInput) error {
	for _, line := range lines {
		row := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Measurement:  line.Measurement,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
