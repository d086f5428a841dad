package repository

import (
	"context"

	"library-backend/internal/domains/author/filter"
	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/pagination"
)

// RepositoryInterface is the data access of the authors table.
// Every method runs inside the transaction carried by ctx, if any.
type RepositoryInterface interface {
	// FindByID returns nil, nil when no author has this id
	FindByID(ctx context.Context, id int64) (*model.Author, error)
	// Create inserts a, sets a.ID and returns the number of inserted rows
	Create(ctx context.Context, a *model.Author) (int64, error)
	// Update overwrites every column of the row a.ID and returns the number of updated rows
	Update(ctx context.Context, a *model.Author) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	// CountByIDs counts the distinct existing authors among ids
	CountByIDs(ctx context.Context, ids []int64) (int64, error)

	FindAll(ctx context.Context, p filter.Predicate) ([]model.Author, error)
	FindPage(ctx context.Context, p filter.Predicate, req pagination.PageRequest) ([]model.Author, error)
	Count(ctx context.Context, p filter.Predicate) (int64, error)
}
