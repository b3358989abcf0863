package service

import (
	"context"
	"fmt"

	"libraryhub/internal/auth"
	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/model"
	"libraryhub/internal/repository"
)

// UserService handles signup and login.
type UserService interface {
	SignupUser(ctx context.Context, user *model.User) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService on repo.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// SignupUser stores user with its password hashed. user.Password holds the
// plaintext on entry and the hash on return. An empty role becomes "user".
func (s *userService) SignupUser(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginUser returns the user whose email and password match.
func (s *userService) LoginUser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
