package user

import "context"

// Repository is the data access contract for users.
type Repository interface {
	// Create inserts a user. The email unique constraint surfaces as
	// ErrEmailTaken.
	Create(ctx context.Context, u *User) (*User, error)

	// FindByEmail returns ErrUserNotFound when the email is unknown.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns ErrUserNotFound when the id is unknown.
	FindByID(ctx context.Context, id int64) (*User, error)

	List(ctx context.Context) ([]User, error)
}
