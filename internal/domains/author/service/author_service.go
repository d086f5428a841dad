package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"library-backend/internal/domains/author/filter"
	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/apperror"
	"library-backend/pkg/database"
)

type authorService struct {
	repo  repository.RepositoryInterface
	links BookLinks
	tx    database.TxManager
}

func NewAuthorService(repo repository.RepositoryInterface, links BookLinks, tx database.TxManager) ServiceInterface {
	return &authorService{
		repo:  repo,
		links: links,
		tx:    tx,
	}
}

func (s *authorService) FindAuthorByID(ctx context.Context, id int64) (*model.AuthorProjection, error) {
	return database.ReadOnlyResult(ctx, s.tx, func(ctx context.Context) (*model.AuthorProjection, error) {
		a, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, model.NewAuthorNotFound()
		}
		return model.NewAuthorProjection(a), nil
	})
}

func (s *authorService) SaveAuthor(ctx context.Context, req model.AuthorRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, model.NewInvalidAuthor(err)
	}

	affected, err := s.repo.Create(ctx, req.ToAuthor(0))
	if err != nil {
		log.Error().Err(err).Msg("failed to insert author")
		return 0, model.NewAuthorNotRegistered(err)
	}

	return affected, nil
}

func (s *authorService) UpdateAuthor(ctx context.Context, id int64, req model.AuthorRequest) (*model.AuthorProjection, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidAuthor(err)
	}

	return database.WithTransactionResult(ctx, s.tx, func(ctx context.Context) (*model.AuthorProjection, error) {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, model.NewAuthorNotFoundToUpdate()
		}

		if _, err := s.repo.Update(ctx, req.ToAuthor(id)); err != nil {
			log.Error().Err(err).Int64("author_id", id).Msg("failed to update author")
			return nil, apperror.Internal(model.MsgAuthorNotUpdated, err)
		}

		updated, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, model.NewUpdatedAuthorMissing()
		}

		return model.NewAuthorProjection(updated), nil
	})
}

func (s *authorService) DeleteAuthorByID(ctx context.Context, id int64) (bool, error) {
	return database.WithTransactionResult(ctx, s.tx, func(ctx context.Context) (bool, error) {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		if current == nil {
			return false, model.NewAuthorNotFoundToDelete()
		}

		// links first, the author row is still referenced until they are gone
		linked, err := s.links.ExistsByAuthorID(ctx, id)
		if err != nil {
			return false, err
		}
		if linked {
			if _, err := s.links.DeleteByAuthorID(ctx, id); err != nil {
				return false, err
			}
		}

		if _, err := s.repo.DeleteByID(ctx, id); err != nil {
			return false, err
		}

		return true, nil
	})
}

func (s *authorService) FindAllWithPredicate(ctx context.Context, p filter.Predicate) ([]model.AuthorProjection, error) {
	authors, err := s.repo.FindAll(ctx, p)
	if err != nil {
		return nil, err
	}

	return model.NewAuthorProjections(authors), nil
}

func (s *authorService) FindAllPaginated(ctx context.Context, p filter.Predicate, req pagination.PageRequest) (*pagination.Page[model.AuthorProjection], error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.BadRequest("invalid page request: "+err.Error(), err)
	}
	if len(req.Sort) == 0 {
		req.Sort = pagination.DefaultSort()
	}

	var (
		authors []model.Author
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = s.repo.FindPage(gctx, p, req)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page := pagination.Map(pagination.NewPage(authors, req, total), func(a model.Author) model.AuthorProjection {
		return *model.NewAuthorProjection(&a)
	})

	return &page, nil
}
