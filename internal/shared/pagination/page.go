package pagination

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 5
	MaxPageSize       = 100
)

// PageRequest asks for one 0-indexed page
type PageRequest struct {
	Number int
	Size   int
	Sort   Sort
}

// NewPageRequest falls back to id ascending when sort is empty
func NewPageRequest(number, size int, sort Sort) PageRequest {
	if len(sort) == 0 {
		sort = DefaultSort()
	}
	return PageRequest{Number: number, Size: size, Sort: sort}
}

func DefaultPageRequest() PageRequest {
	return NewPageRequest(DefaultPageNumber, DefaultPageSize, nil)
}

func (p PageRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Number, validation.Min(0)),
		validation.Field(&p.Size, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
	)
}

func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is one slice of a sorted result set plus totals
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return Page[T]{
		Content:          content,
		Number:           req.Number,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            req.Number == 0,
		Last:             req.Number+1 >= totalPages,
		Empty:            len(content) == 0,
	}
}

// Map converts the content of a page and keeps its metadata
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}

	return Page[U]{
		Content:          content,
		Number:           p.Number,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		NumberOfElements: p.NumberOfElements,
		First:            p.First,
		Last:             p.Last,
		Empty:            p.Empty,
	}
}
