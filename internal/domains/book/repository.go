package book

import "context"

// Repository is the data access contract for books.
type Repository interface {
	// Create inserts a book. The slug unique constraint backstops
	// concurrent slug races (ErrDuplicateSlug); the author foreign key
	// backstops dangling references (ErrUnknownAuthor).
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID returns ErrBookNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (*Book, error)

	// GetBySlug returns ErrBookNotFound when the slug does not exist.
	GetBySlug(ctx context.Context, slug string) (*Book, error)

	// List returns a page of books joined with their author plus the
	// total count.
	List(ctx context.Context, filter Filter) ([]Book, int64, error)

	// Update persists title, slug and author reference.
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete returns ErrBookNotFound when the id does not exist.
	Delete(ctx context.Context, id int64) error

	// SlugExists reports whether slug is taken by a book other than
	// excludeID (0 excludes nothing).
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}
