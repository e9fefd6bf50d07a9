package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"catalog-backend/internal/domains/user"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/token"
)

const bcryptCost = 12

type userService struct {
	repo   user.Repository
	tokens *token.Manager
}

func NewUserService(repo user.Repository, tokens *token.Manager) user.Service {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal("internal server error", err)
	}

	created, err := s.repo.Create(ctx, &user.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         user.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	return created.ToRegisterResponse(), nil
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Unknown email reports the same failure as a wrong password.
		// Storage errors are not auth failures and pass through as-is.
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, apperror.Internal("internal server error", err)
	}

	return &user.LoginResponse{Token: accessToken, Email: u.Email}, nil
}

func (s *userService) Me(ctx context.Context, id int64) (*user.MeResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &user.MeResponse{ID: u.ID, Role: u.Role}, nil
}

func (s *userService) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *users[i].ToResponse())
	}
	return responses, nil
}
