package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"library-backend/internal/domains/author/filter"
	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/database"
)

const authorColumns = `id, first_name, last_name, birthdate`

// postgresRepository implements RepositoryInterface on top of pgx
type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

// q returns the transaction in ctx, or the pool
func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.q(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (int64, error) {
	query := `
		INSERT INTO authors (first_name, last_name, birthdate)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.q(ctx).QueryRow(ctx, query, a.FirstName, a.LastName, a.Birthdate).Scan(&a.ID); err != nil {
		return 0, fmt.Errorf("failed to create author: %w", err)
	}

	return 1, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (int64, error) {
	query := `
		UPDATE authors
		SET first_name = $2, last_name = $3, birthdate = $4
		WHERE id = $1
	`

	tag, err := r.q(ctx).Exec(ctx, query, a.ID, a.FirstName, a.LastName, a.Birthdate)
	if err != nil {
		return 0, fmt.Errorf("failed to update author: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete author: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM authors WHERE id = ANY($1)`, pq.Array(ids)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count authors by ids: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, p filter.Predicate) ([]model.Author, error) {
	where, args := filter.Where(p, 1)
	query := `SELECT ` + authorColumns + ` FROM authors` + where

	return r.queryAuthors(ctx, query, args...)
}

func (r *postgresRepository) FindPage(ctx context.Context, p filter.Predicate, req pagination.PageRequest) ([]model.Author, error) {
	where, args := filter.Where(p, 1)

	// ORDER BY columns come from the sort whitelist, never from raw input
	query := fmt.Sprintf(`SELECT %s FROM authors%s ORDER BY %s LIMIT %s OFFSET %s`,
		authorColumns,
		where,
		req.Sort.OrderBy("id"),
		utils.Placeholder(len(args)+1),
		utils.Placeholder(len(args)+2),
	)
	args = append(args, req.Size, req.Offset())

	return r.queryAuthors(ctx, query, args...)
}

func (r *postgresRepository) Count(ctx context.Context, p filter.Predicate) (int64, error) {
	where, args := filter.Where(p, 1)

	var count int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM authors`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) queryAuthors(ctx context.Context, query string, args ...any) ([]model.Author, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Birthdate); err != nil {
		return nil, err
	}
	return &a, nil
}
