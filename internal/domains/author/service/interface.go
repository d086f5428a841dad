package service

import (
	"context"

	"library-backend/internal/domains/author/filter"
	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/pagination"
)

// ServiceInterface is the author business logic used by the HTTP handler
type ServiceInterface interface {
	// FindAuthorByID fails with NotFound when the id does not exist
	FindAuthorByID(ctx context.Context, id int64) (*model.AuthorProjection, error)
	// SaveAuthor returns the number of inserted rows; any insert failure is an InternalError
	SaveAuthor(ctx context.Context, req model.AuthorRequest) (int64, error)
	// UpdateAuthor replaces every field of an existing author and returns the re-read projection
	UpdateAuthor(ctx context.Context, id int64, req model.AuthorRequest) (*model.AuthorProjection, error)
	// DeleteAuthorByID removes the author's book links, then the author
	DeleteAuthorByID(ctx context.Context, id int64) (bool, error)

	FindAllWithPredicate(ctx context.Context, p filter.Predicate) ([]model.AuthorProjection, error)
	FindAllPaginated(ctx context.Context, p filter.Predicate, req pagination.PageRequest) (*pagination.Page[model.AuthorProjection], error)
}

// BookLinks is the part of the books_authors repository an author deletion needs
type BookLinks interface {
	ExistsByAuthorID(ctx context.Context, authorID int64) (bool, error)
	DeleteByAuthorID(ctx context.Context, authorID int64) (int64, error)
}
