package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovenbird/cookbook-backend/internal/service"
)

type NamedEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// RouteRegistrar is implemented by handlers that mount themselves on a
// route group.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CatalogHandler serves the identical CRUD surface of cuisines, allergens
// and ingredients from one implementation.
type CatalogHandler[T any, P service.NamedPtr[T]] struct {
	svc  *service.CatalogService[T, P]
	path string
}

func NewCatalogHandler[T any, P service.NamedPtr[T]](svc *service.CatalogService[T, P], path string) *CatalogHandler[T, P] {
	return &CatalogHandler[T, P]{svc: svc, path: path}
}

func (h *CatalogHandler[T, P]) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group(h.path)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *CatalogHandler[T, P]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler[T, P]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entity, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *CatalogHandler[T, P]) Create(c *gin.Context) {
	var req NamedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entity, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *CatalogHandler[T, P]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req NamedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entity, err := h.svc.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *CatalogHandler[T, P]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
