package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrCuisineNotFound = errors.New("cuisine not found")
	ErrJobNotFound     = errors.New("video job not found")
	ErrNotRecipeAuthor = errors.New("you are not the author of this recipe")
	ErrEmptyUpload     = errors.New("at least one image must be uploaded")
)

// MissingIDsError reports referenced entities that do not exist. It lists
// every missing id, not just the first.
type MissingIDsError struct {
	Entity string
	IDs    []uint
}

func (e *MissingIDsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%ss with ids [%s] not found", e.Entity, strings.Join(parts, ", "))
}

func missingIDs(requested []uint, found map[uint]bool) []uint {
	var missing []uint
	seen := make(map[uint]bool)
	for _, id := range requested {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// DuplicateNameError is a case-sensitive name collision on a catalog entity.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s with name %q already exists", e.Entity, e.Name)
}

// EntityNotFoundError is a missing catalog record looked up by id.
type EntityNotFoundError struct {
	Entity string
	ID     uint
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// InvalidSortFieldError reports a sort field outside the allowed set.
type InvalidSortFieldError struct {
	Field   string
	Allowed []string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("invalid sort field %q, allowed fields: %s", e.Field, strings.Join(e.Allowed, ", "))
}

// NotAnImageError reports an upload entry with a non-image content type.
type NotAnImageError struct {
	ContentType string
}

func (e *NotAnImageError) Error() string {
	return fmt.Sprintf("file must be an image, got content type %q", e.ContentType)
}
