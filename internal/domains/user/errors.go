package user

import "catalog-backend/internal/shared/apperror"

var (
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so login failures do not reveal which one it was.
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email/password")

	ErrEmailTaken   = apperror.Conflict("email is already registered")
	ErrUserNotFound = apperror.NotFound("user not found")
)
