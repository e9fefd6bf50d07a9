package book

import "context"

// Service is the business logic contract for books.
type Service interface {
	// Create validates the request, derives a unique slug from the title
	// and persists the book.
	Create(ctx context.Context, req *CreateBookRequest) (*BookResponse, error)

	GetByID(ctx context.Context, id int64) (*BookResponse, error)
	GetBySlug(ctx context.Context, slug string) (*BookResponse, error)
	List(ctx context.Context, filter Filter) ([]BookResponse, int64, error)

	// Update applies a partial update. The slug is recomputed only when
	// the title actually changes.
	Update(ctx context.Context, id int64, req *UpdateBookRequest) (*BookResponse, error)

	Delete(ctx context.Context, id int64) error
}
