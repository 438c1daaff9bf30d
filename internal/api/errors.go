package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ovenbird/cookbook-backend/internal/models"
	"github.com/ovenbird/cookbook-backend/internal/service"
)

// handleServiceError maps service errors to HTTP responses. Validation and
// reference failures are client errors; anything unrecognized is a generic
// server fault and never surfaces internals.
func handleServiceError(c *gin.Context, err error) {
	var (
		entityNotFound *service.EntityNotFoundError
		missing        *service.MissingIDsError
		duplicate      *service.DuplicateNameError
		badMeasurement *models.InvalidMeasurementError
		badSortField   *service.InvalidSortFieldError
		notAnImage     *service.NotAnImageError
	)

	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrJobNotFound),
		errors.As(err, &entityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCuisineNotFound),
		errors.Is(err, service.ErrEmptyUpload),
		errors.As(err, &missing),
		errors.As(err, &badMeasurement),
		errors.As(err, &badSortField),
		errors.As(err, &notAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[api] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseID reads the :id path parameter. A malformed id writes the 400
// response and reports false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// currentAuthor reads the authenticated principal set by the auth
// middleware.
func currentAuthor(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	return &models.User{ID: userID.(uint)}, true
}
