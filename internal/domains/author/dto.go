package author

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxNameLength = 255

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name string `json:"name"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, maxNameLength),
		),
	)
}

// UpdateAuthorRequest - PATCH /v1/authors/:id
type UpdateAuthorRequest struct {
	Name string `json:"name"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, maxNameLength),
		),
	)
}

// AuthorResponse carries an author plus the titles of their books.
type AuthorResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Books     []string  `json:"books"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Author) ToResponse(bookTitles []string) *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Slug:      a.Slug,
		Books:     bookTitles,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Filter - query parameters for listings.
type Filter struct {
	Search string `form:"search"`
	SortBy string `form:"sort_by"`
	Order  string `form:"order"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
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

	switch f.SortBy {
	case "name", "created_at", "updated_at":
	default:
		f.SortBy = "created_at"
	}

	f.Order = strings.ToUpper(f.Order)
	if f.Order != "ASC" && f.Order != "DESC" {
		f.Order = "DESC"
	}
}
