package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/pkg/database"
)

type BookService struct {
	books   repository.RepositoryInterface
	links   repository.BookAuthorRepository
	authors AuthorCounter
	tx      database.TxManager
}

func NewService(
	books repository.RepositoryInterface,
	links repository.BookAuthorRepository,
	authors AuthorCounter,
	tx database.TxManager,
) ServiceInterface {
	return &BookService{
		books:   books,
		links:   links,
		authors: authors,
		tx:      tx,
	}
}

func (s *BookService) FindBookByID(ctx context.Context, id int64) (*model.BookProjection, error) {
	return database.ReadOnlyResult(ctx, s.tx, func(ctx context.Context) (*model.BookProjection, error) {
		b, err := s.links.FindBookWithAuthors(ctx, id)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, model.NewBookNotFound()
		}
		return model.NewBookProjection(b), nil
	})
}

// SaveBook inserts the book, checks every author id exists, then links them.
// Any failure rolls back the book row too.
func (s *BookService) SaveBook(ctx context.Context, req model.RegisterBookRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, model.NewInvalidBook(err)
	}

	return database.WithTransactionResult(ctx, s.tx, func(ctx context.Context) (int64, error) {
		bookID, err := s.books.Create(ctx, req.ToBook())
		if err != nil {
			log.Error().Err(err).Msg("failed to insert book")
			return 0, model.NewBookNotRegistered(err)
		}

		if len(req.AuthorIDList) == 0 {
			return bookID, nil
		}

		// duplicated ids count once, so they fail the check as well
		count, err := s.authors.CountByIDs(ctx, req.AuthorIDList)
		if err != nil {
			return 0, err
		}
		if count != int64(len(req.AuthorIDList)) {
			return 0, model.NewAuthorsNotRegistered()
		}

		for _, authorID := range req.AuthorIDList {
			if err := s.links.Create(ctx, model.BookAuthor{BookID: bookID, AuthorID: authorID}); err != nil {
				log.Error().Err(err).Int64("book_id", bookID).Int64("author_id", authorID).Msg("failed to link author")
				return 0, model.NewBookNotRegistered(err)
			}
		}

		return bookID, nil
	})
}

func (s *BookService) DeleteBookByID(ctx context.Context, id int64) (bool, error) {
	return database.WithTransactionResult(ctx, s.tx, func(ctx context.Context) (bool, error) {
		b, err := s.books.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		if b == nil {
			return false, model.NewBookNotFoundToDelete()
		}

		linked, err := s.links.ExistsByBookID(ctx, id)
		if err != nil {
			return false, err
		}
		if linked {
			if _, err := s.links.DeleteByBookID(ctx, id); err != nil {
				return false, err
			}
		}

		if _, err := s.books.DeleteByID(ctx, id); err != nil {
			return false, err
		}

		return true, nil
	})
}
