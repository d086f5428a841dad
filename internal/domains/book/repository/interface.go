package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface is the data access of the books table
type RepositoryInterface interface {
	// Create inserts b, sets b.ID and returns it
	Create(ctx context.Context, b *model.Book) (int64, error)
	// FindByID returns nil, nil when no book has this id
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// BookAuthorRepository manages the books_authors join table
type BookAuthorRepository interface {
	Create(ctx context.Context, link model.BookAuthor) error
	ExistsByBookID(ctx context.Context, bookID int64) (bool, error)
	ExistsByAuthorID(ctx context.Context, authorID int64) (bool, error)
	DeleteByBookID(ctx context.Context, bookID int64) (int64, error)
	DeleteByAuthorID(ctx context.Context, authorID int64) (int64, error)

	// FindBookWithAuthors inner-joins the book with its authors.
	// A book without authors is not found: nil, nil.
	FindBookWithAuthors(ctx context.Context, bookID int64) (*model.BookWithAuthors, error)
}
