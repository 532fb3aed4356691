package ports

import (
	"context"

	"github.com/velora/identity-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, permissions string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
}
