package service

import (
	"context"
	"errors"
	"strings"

	"catalog-backend/internal/domains/author"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/utils"
)

type authorService struct {
	repo author.Repository
}

// NewAuthorService creates an author service. The repository is injected
// so tests can run against an in-memory implementation.
func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.AuthorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	slug, err := s.assignSlug(ctx, name, 0)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &author.Author{Name: name, Slug: slug})
	if err != nil {
		return nil, err
	}

	return created.ToResponse([]string{}), nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withBooks(ctx, a)
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*author.AuthorResponse, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, author.ErrAuthorNotFound
	}

	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withBooks(ctx, a)
}

func (s *authorService) List(ctx context.Context, filter author.Filter) ([]author.AuthorResponse, int64, error) {
	filter.Normalize()

	authors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// One grouped lookup for the whole page instead of a query per author.
	ids := make([]int64, 0, len(authors))
	for i := range authors {
		ids = append(ids, authors[i].ID)
	}
	titlesByAuthor, err := s.repo.BookTitlesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]author.AuthorResponse, 0, len(authors))
	for i := range authors {
		titles := titlesByAuthor[authors[i].ID]
		if titles == nil {
			titles = []string{}
		}
		responses = append(responses, *authors[i].ToResponse(titles))
	}
	return responses, total, nil
}

func (s *authorService) Update(ctx context.Context, id int64, req *author.UpdateAuthorRequest) (*author.AuthorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name != current.Name {
		// Rename: recompute the slug, excluding this record so a rename
		// to an equivalent name does not collide with itself.
		slug, err := s.assignSlug(ctx, name, id)
		if err != nil {
			return nil, err
		}
		current.Slug = slug
		current.Name = name
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}
	return s.withBooks(ctx, updated)
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// assignSlug derives the unique slug for name within the author
// collection, translating slug errors into the shared taxonomy.
func (s *authorService) assignSlug(ctx context.Context, name string, excludeID int64) (string, error) {
	slug, err := utils.UniqueSlug(ctx, name, excludeID, s.repo.SlugExists)
	if err != nil {
		if errors.Is(err, utils.ErrEmptySlug) {
			return "", apperror.Validation("Validation error", map[string]string{
				"name": "name must contain at least one letter or digit",
			})
		}
		if errors.Is(err, utils.ErrSlugSpaceExhausted) {
			return "", apperror.Internal("internal server error", err)
		}
		return "", err
	}
	return slug, nil
}

func (s *authorService) withBooks(ctx context.Context, a *author.Author) (*author.AuthorResponse, error) {
	titles, err := s.repo.BookTitles(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}
	return a.ToResponse(titles), nil
}

