package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ovenbird/cookbook-backend/internal/models"
)

// NamedPtr constrains a catalog entity to its pointer form so the service can
// allocate records and still go through the NamedEntity accessors.
type NamedPtr[T any] interface {
	*T
	models.NamedEntity
}

// CatalogService is the one CRUD implementation shared by cuisines, allergens
// and ingredients. Name uniqueness is checked case-sensitively before every
// insert and rename, with the schema unique index as the backstop.
type CatalogService[T any, P NamedPtr[T]] struct {
	db *gorm.DB
}

func NewCuisineService(db *gorm.DB) *CatalogService[models.Cuisine, *models.Cuisine] {
	return &CatalogService[models.Cuisine, *models.Cuisine]{db: db}
}

func NewAllergenService(db *gorm.DB) *CatalogService[models.Allergen, *models.Allergen] {
	return &CatalogService[models.Allergen, *models.Allergen]{db: db}
}

func NewIngredientService(db *gorm.DB) *CatalogService[models.Ingredient, *models.Ingredient] {
	return &CatalogService[models.Ingredient, *models.Ingredient]{db: db}
}

// List returns all records ordered by id.
func (s *CatalogService[T, P]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get retrieves a record by id.
func (s *CatalogService[T, P]) Get(ctx context.Context, id uint) (P, error) {
	entity := P(new(T))
	if err := s.db.WithContext(ctx).First(entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &EntityNotFoundError{Entity: entity.EntityName(), ID: id}
		}
		return nil, err
	}
	return entity, nil
}

// Create inserts a new named record.
func (s *CatalogService[T, P]) Create(ctx context.Context, name string) (P, error) {
	entity := P(new(T))
	if err := s.ensureUnique(ctx, entity.EntityName(), name, 0); err != nil {
		return nil, err
	}
	entity.SetName(name)
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, translateUniqueViolation(err, entity.EntityName(), name)
	}
	return entity, nil
}

// Update renames a record. Renaming a record to its own current name is not a
// conflict.
func (s *CatalogService[T, P]) Update(ctx context.Context, id uint, name string) (P, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, entity.EntityName(), name, id); err != nil {
		return nil, err
	}
	entity.SetName(name)
	if err := s.db.WithContext(ctx).Save(entity).Error; err != nil {
		return nil, translateUniqueViolation(err, entity.EntityName(), name)
	}
	return entity, nil
}

// Delete removes a record by id.
func (s *CatalogService[T, P]) Delete(ctx context.Context, id uint) error {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(entity).Error
}

// GetMany returns the records matching ids, in no particular order. Callers
// compare lengths to detect missing references.
func (s *CatalogService[T, P]) GetMany(ctx context.Context, ids []uint) ([]T, error) {
	var items []T
	if len(ids) == 0 {
		return items, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService[T, P]) ensureUnique(ctx context.Context, entityName, name string, excludeID uint) error {
	var count int64
	query := s.db.WithContext(ctx).Model(P(new(T))).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &DuplicateNameError{Entity: entityName, Name: name}
	}
	return nil
}

// translateUniqueViolation maps a constraint violation that slipped past the
// pre-check (concurrent insert) to the same DuplicateNameError the guard
// returns.
func translateUniqueViolation(err error, entityName, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &DuplicateNameError{Entity: entityName, Name: name}
	}
	// sqlite (tests) has no typed error here
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &DuplicateNameError{Entity: entityName, Name: name}
	}
	return err
}
