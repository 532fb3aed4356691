package service

import (
	"context"
	"errors"
	"time"

	"github.com/velora/identity-api/internal/core/domain"
	"github.com/velora/identity-api/internal/core/password"
	"github.com/velora/identity-api/internal/core/ports"
	"github.com/velora/identity-api/internal/core/token"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	hasher *password.Hasher
	codec  *token.Codec
}

func NewAuthService(users ports.UserRepository, hasher *password.Hasher, codec *token.Codec) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec}
}

// Register creates a new account with a hashed password. No token is
// issued; the caller logs in separately.
func (s *AuthService) Register(ctx context.Context, name, email, pass, permissions string) (*domain.User, error) {
	if name == "" || email == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.KnownPermission(permissions) {
		return nil, domain.ErrForbidden
	}

	hash, err := s.hasher.Hash(ctx, pass)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Permissions:  permissions,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	return s.users.Create(ctx, user)
}

// Login verifies the credentials and returns a signed bearer token. An
// unknown email and a wrong password produce the same error; nothing in
// the response reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, error) {
	if email == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(ctx, pass, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.codec.Issue(user)
}
