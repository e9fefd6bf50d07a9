package author

import "catalog-backend/internal/shared/apperror"

var (
	ErrAuthorNotFound = apperror.NotFound("author not found")
	ErrDuplicateSlug  = apperror.Conflict("author with this slug already exists")
)
