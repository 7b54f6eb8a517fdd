package pagination_utils

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type PageRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Page is the envelope every list endpoint returns. Slicing always
// happens in the store via LIMIT/OFFSET, never in application memory.
type Page[T any] struct {
	Results []T   `json:"results"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func ParsePageRequest(ctx *gin.Context) PageRequest {
	request := PageRequest{Page: 1, PerPage: DefaultPerPage}

	if err := ctx.ShouldBindQuery(&request); err != nil {
		return PageRequest{Page: 1, PerPage: DefaultPerPage}
	}

	if request.Page < 1 {
		request.Page = 1
	}
	if request.PerPage < 1 {
		request.PerPage = DefaultPerPage
	}
	if request.PerPage > MaxPerPage {
		request.PerPage = MaxPerPage
	}

	return request
}

func Paginate[T any](query *gorm.DB, request PageRequest) (*Page[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	results := make([]T, 0, request.PerPage)
	offset := (request.Page - 1) * request.PerPage

	err := query.Session(&gorm.Session{}).
		Limit(request.PerPage).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(request.PerPage) - 1) / int64(request.PerPage))

	return &Page[T]{
		Results: results,
		Page:    request.Page,
		Pages:   pages,
		PerPage: request.PerPage,
		Total:   total,
	}, nil
}

// MapPage converts a page of one result type into another, keeping the
// paging metadata intact.
func MapPage[T any, R any](page *Page[T], mapper func(T) R) *Page[R] {
	results := make([]R, len(page.Results))
	for i, item := range page.Results {
		results[i] = mapper(item)
	}

	return &Page[R]{
		Results: results,
		Page:    page.Page,
		Pages:   page.Pages,
		PerPage: page.PerPage,
		Total:   page.Total,
	}
}
