package author

import "context"

// Service is the business logic contract for authors.
type Service interface {
	// Create validates the request, derives a unique slug from the name
	// and persists the author.
	Create(ctx context.Context, req *CreateAuthorRequest) (*AuthorResponse, error)

	GetByID(ctx context.Context, id int64) (*AuthorResponse, error)
	GetBySlug(ctx context.Context, slug string) (*AuthorResponse, error)
	List(ctx context.Context, filter Filter) ([]AuthorResponse, int64, error)

	// Update renames the author. The slug is recomputed only when the
	// name actually changes; re-submitting the same name keeps the slug.
	Update(ctx context.Context, id int64, req *UpdateAuthorRequest) (*AuthorResponse, error)

	Delete(ctx context.Context, id int64) error
}
