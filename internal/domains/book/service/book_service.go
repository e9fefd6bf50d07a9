package service

import (
	"context"
	"errors"
	"strings"

	"catalog-backend/internal/domains/book"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/utils"
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	slug, err := s.assignSlug(ctx, title, 0)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &book.Book{
		Title:    title,
		Slug:     slug,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	return created.ToResponse(), nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.ToResponse(), nil
}

func (s *bookService) GetBySlug(ctx context.Context, slug string) (*book.BookResponse, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, book.ErrBookNotFound
	}

	b, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return b.ToResponse(), nil
}

func (s *bookService) List(ctx context.Context, filter book.Filter) ([]book.BookResponse, int64, error) {
	filter.Normalize()

	books, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]book.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, *books[i].ToResponse())
	}
	return responses, total, nil
}

func (s *bookService) Update(ctx context.Context, id int64, req *book.UpdateBookRequest) (*book.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != current.Title {
			slug, err := s.assignSlug(ctx, title, id)
			if err != nil {
				return nil, err
			}
			current.Title = title
			current.Slug = slug
		}
	}
	if req.SetAuthor {
		current.AuthorID = req.AuthorID
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *bookService) assignSlug(ctx context.Context, title string, excludeID int64) (string, error) {
	slug, err := utils.UniqueSlug(ctx, title, excludeID, s.repo.SlugExists)
	if err != nil {
		if errors.Is(err, utils.ErrEmptySlug) {
			return "", apperror.Validation("Validation error", map[string]string{
				"title": "title must contain at least one letter or digit",
			})
		}
		if errors.Is(err, utils.ErrSlugSpaceExhausted) {
			return "", apperror.Internal("internal server error", err)
		}
		return "", err
	}
	return slug, nil
}

