// Package pagination slices a prepared query into pages and reports page
// metadata. Building and filtering the query is the caller's concern.
package pagination

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Params are the client-provided page coordinates.
type Params struct {
	Page int
	Size int
}

// ParamsFromQuery parses page/size strings, falling back to defaults on
// anything unusable.
func ParamsFromQuery(page, size string) Params {
	p := Params{}
	if n, err := strconv.Atoi(page); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(size); err == nil {
		p.Size = n
	}
	return p.normalized()
}

func (p Params) normalized() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Page is one slice of a result set plus its metadata.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// Paginate counts the result set with countQuery and fetches one page with
// listQuery. The two queries must share filters; they differ only in select
// and ordering.
func Paginate[T any](listQuery, countQuery *gorm.DB, params Params) (*Page[T], error) {
	params = params.normalized()

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	items := []T{}
	offset := (params.Page - 1) * params.Size
	if err := listQuery.Offset(offset).Limit(params.Size).Find(&items).Error; err != nil {
		return nil, err
	}

	pages := int((total + int64(params.Size) - 1) / int64(params.Size))
	return &Page[T]{
		Items: items,
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
		Pages: pages,
	}, nil
}
