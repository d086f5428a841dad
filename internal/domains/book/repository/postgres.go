package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (int64, error) {
	query := `
		INSERT INTO books (title, publication_date, online_availability)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.q(ctx).QueryRow(ctx, query, b.Title, b.PublicationDate, b.OnlineAvailability).Scan(&b.ID); err != nil {
		return 0, fmt.Errorf("failed to create book: %w", err)
	}

	return b.ID, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT id, title, publication_date, online_availability
		FROM books
		WHERE id = $1
	`

	var b model.Book
	var title *string
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(&b.ID, &title, &b.PublicationDate, &b.OnlineAvailability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	if title != nil {
		b.Title = *title
	}

	return &b, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete book: %w", err)
	}

	return tag.RowsAffected(), nil
}
