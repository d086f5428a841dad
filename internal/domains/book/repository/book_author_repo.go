package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
)

type bookAuthorRepository struct {
	db database.Querier
}

func NewBookAuthorRepository(db database.Querier) BookAuthorRepository {
	return &bookAuthorRepository{db: db}
}

func (r *bookAuthorRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func (r *bookAuthorRepository) Create(ctx context.Context, link model.BookAuthor) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO books_authors (book_id, author_id) VALUES ($1, $2)`,
		link.BookID, link.AuthorID,
	)
	if err != nil {
		return fmt.Errorf("failed to link book %d to author %d: %w", link.BookID, link.AuthorID, err)
	}

	return nil
}

func (r *bookAuthorRepository) ExistsByBookID(ctx context.Context, bookID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM books_authors WHERE book_id = $1)`, bookID)
}

func (r *bookAuthorRepository) ExistsByAuthorID(ctx context.Context, authorID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM books_authors WHERE author_id = $1)`, authorID)
}

func (r *bookAuthorRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book-author links: %w", err)
	}
	return exists, nil
}

func (r *bookAuthorRepository) DeleteByBookID(ctx context.Context, bookID int64) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM books_authors WHERE book_id = $1`, bookID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete links of book %d: %w", bookID, err)
	}

	return tag.RowsAffected(), nil
}

func (r *bookAuthorRepository) DeleteByAuthorID(ctx context.Context, authorID int64) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM books_authors WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete links of author %d: %w", authorID, err)
	}

	return tag.RowsAffected(), nil
}

func (r *bookAuthorRepository) FindBookWithAuthors(ctx context.Context, bookID int64) (*model.BookWithAuthors, error) {
	// INNER JOIN: a book without authors yields no row
	query := `
		SELECT b.id, b.title, b.publication_date, b.online_availability,
			STRING_AGG(CONCAT(a.first_name, ' ', a.last_name), ', ' ORDER BY a.id) AS concat_authors
		FROM books AS b
			INNER JOIN books_authors AS ba ON b.id = ba.book_id
			INNER JOIN authors AS a ON ba.author_id = a.id
		WHERE b.id = $1
		GROUP BY b.id, b.title, b.publication_date, b.online_availability
	`

	var b model.BookWithAuthors
	var title *string
	err := r.q(ctx).QueryRow(ctx, query, bookID).Scan(
		&b.ID,
		&title,
		&b.PublicationDate,
		&b.OnlineAvailability,
		&b.ConcatAuthors,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book with authors: %w", err)
	}
	if title != nil {
		b.Title = *title
	}

	return &b, nil
}
