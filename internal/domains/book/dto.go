package book

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxTitleLength = 255

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title    string `json:"title"`
	AuthorID *int64 `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&r.AuthorID,
			validation.When(r.AuthorID != nil, validation.Min(int64(1)).Error("author_id must be positive")),
		),
	)
}

// UpdateBookRequest - PATCH /v1/books/:id
// Title is optional for partial updates; SetAuthor distinguishes "leave
// author untouched" from "clear the author" (author_id: null).
type UpdateBookRequest struct {
	Title     *string `json:"title"`
	AuthorID  *int64  `json:"author_id"`
	SetAuthor bool    `json:"-"`
}

// UnmarshalJSON records whether author_id was present at all, so that an
// explicit null clears the author while an absent key leaves it alone.
func (r *UpdateBookRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateBookRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = UpdateBookRequest(a)
	_, r.SetAuthor = fields["author_id"]
	return nil
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil,
				validation.Required.Error("title must not be empty"),
				validation.Length(1, maxTitleLength),
			),
		),
		validation.Field(&r.AuthorID,
			validation.When(r.AuthorID != nil, validation.Min(int64(1)).Error("author_id must be positive")),
		),
	)
}

// AuthorRef is the embedded author summary on book responses.
type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Author    *AuthorRef `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (b *Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Slug:      b.Slug,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.AuthorID != nil && b.AuthorName != nil {
		resp.Author = &AuthorRef{ID: *b.AuthorID, Name: *b.AuthorName}
	}
	return resp
}

// Filter - query parameters for listings.
type Filter struct {
	Search   string `form:"search"`
	AuthorID int64  `form:"author_id"`
	SortBy   string `form:"sort_by"`
	Order    string `form:"order"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// Normalize fills paging defaults and clamps sorting to whitelisted
// columns. Handlers call it before the service so the values they report
// in meta are the ones actually applied.
func (f *Filter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.AuthorID < 0 {
		f.AuthorID = 0
	}

	switch f.SortBy {
	case "title", "created_at", "updated_at":
	default:
		f.SortBy = "created_at"
	}

	f.Order = strings.ToUpper(f.Order)
	if f.Order != "ASC" && f.Order != "DESC" {
		f.Order = "DESC"
	}
}
