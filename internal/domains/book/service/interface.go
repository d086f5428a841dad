package service

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface is the book business logic used by the HTTP handler
type ServiceInterface interface {
	// FindBookByID returns the book with its author names. Books without authors are NotFound.
	FindBookByID(ctx context.Context, id int64) (*model.BookProjection, error)
	// SaveBook creates the book and one link per author id in a single transaction, returning the new id
	SaveBook(ctx context.Context, req model.RegisterBookRequest) (int64, error)
	// DeleteBookByID removes the book's author links, then the book
	DeleteBookByID(ctx context.Context, id int64) (bool, error)
}

// AuthorCounter checks that referenced authors exist
type AuthorCounter interface {
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}
