package service

import (
	"context"

	"github.com/velora/identity-api/internal/core/domain"
	"github.com/velora/identity-api/internal/core/ports"
)

// UserService exposes read operations over the user directory.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
