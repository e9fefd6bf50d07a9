package user

import "context"

// Service implements registration, login and identity lookups.
type Service interface {
	// Register validates the request, hashes the password and persists
	// the user with the default role.
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)

	// Login verifies credentials and issues an access token. Unknown
	// email and wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)

	Me(ctx context.Context, id int64) (*MeResponse, error)

	List(ctx context.Context) ([]UserResponse, error)
}
