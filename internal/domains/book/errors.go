package book

import "catalog-backend/internal/shared/apperror"

var (
	ErrBookNotFound  = apperror.NotFound("book not found")
	ErrDuplicateSlug = apperror.Conflict("book with this slug already exists")
	ErrUnknownAuthor = apperror.Conflict("referenced author does not exist")
)
