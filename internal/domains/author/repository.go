package author

import "context"

// Repository is the data access contract for authors.
type Repository interface {
	// Create inserts an author. The slug unique constraint is the
	// authoritative backstop against concurrent slug races; a violation
	// surfaces as ErrDuplicateSlug.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (*Author, error)

	// GetBySlug returns ErrAuthorNotFound when the slug does not exist.
	GetBySlug(ctx context.Context, slug string) (*Author, error)

	// List returns a page of authors plus the total count.
	List(ctx context.Context, filter Filter) ([]Author, int64, error)

	// Update persists name and slug. Returns ErrAuthorNotFound when the
	// id does not exist, ErrDuplicateSlug on a slug constraint violation.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete returns ErrAuthorNotFound when the id does not exist.
	Delete(ctx context.Context, id int64) error

	// SlugExists reports whether slug is taken by an author other than
	// excludeID (0 excludes nothing).
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)

	// BookTitles returns the titles of the author's books.
	BookTitles(ctx context.Context, authorID int64) ([]string, error)

	// BookTitlesFor returns titles grouped by author for a set of ids,
	// in one query. Authors without books are absent from the map.
	BookTitlesFor(ctx context.Context, authorIDs []int64) (map[int64][]string, error)
}
