package book

import "time"

// Book is the domain entity. Slug is unique across all books, in a
// namespace independent from author slugs. AuthorID is nullable: a book
// may have no author.
type Book struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	AuthorID  *int64    `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// AuthorName is populated by joined reads; nil when AuthorID is nil.
	// It needs a JSON name so the cache round-trips it; the API shape is
	// controlled by BookResponse, which never exposes this field.
	AuthorName *string `json:"author_name,omitempty" db:"author_name"`
}
