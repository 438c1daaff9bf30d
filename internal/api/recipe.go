package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ovenbird/cookbook-backend/internal/middleware"
	"github.com/ovenbird/cookbook-backend/internal/models"
	"github.com/ovenbird/cookbook-backend/internal/pagination"
	"github.com/ovenbird/cookbook-backend/internal/service"
)

type RecipeHandler struct {
	recipes     *service.RecipeService
	authService middleware.TokenValidator
}

func NewRecipeHandler(recipes *service.RecipeService, authService middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		authService: authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
	}
	router.GET("/ingredients/:id/recipes", h.RecipesByIngredient)
}

// ListRecipes serves the filtered, sorted, paginated listing with every
// relation loaded.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{Title: c.Query("title")}
	if raw := c.Query("ingredient_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient_id"})
			return
		}
		ingredientID := uint(id)
		filter.IngredientID = &ingredientID
	}
	if raw := c.Query("order_by"); raw != "" {
		filter.OrderBy = strings.Split(raw, ",")
	}

	listQuery, countQuery, err := h.recipes.ListQuery(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	params := pagination.ParamsFromQuery(c.Query("page"), c.Query("size"))
	page, err := pagination.Paginate[models.Recipe](listQuery, countQuery, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// RecipesByIngredient is the shaped listing: the client picks base fields
// with select= and nested relations with include=.
func (h *RecipeHandler) RecipesByIngredient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.ByIngredient(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	fields := service.ParseSelect(c.Query("select"), service.RecipeBaseFields)
	includes := service.ParseInclude(c.Query("include"))
	c.JSON(http.StatusOK, service.ShapeMany(recipes, fields, includes))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, ok := currentAuthor(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), input, author)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, ok := currentAuthor(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, input, author)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	author, ok := currentAuthor(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, author); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
