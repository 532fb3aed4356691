package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/velora/identity-api/internal/core/domain"
	"github.com/velora/identity-api/internal/core/password"
	"github.com/velora/identity-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = string(rune('a' + r.nextID))
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestService(repo *stubUserRepo) (*AuthService, *token.Codec) {
	hasher := password.NewHasher(bcrypt.MinCost, 2)
	codec, err := token.NewCodec("test-secret", time.Hour)
	if err != nil {
		panic(err)
	}
	return NewAuthService(repo, hasher, codec), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123456", domain.PermissionUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pw123456" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Permissions != domain.PermissionUser {
		t.Fatalf("unexpected permissions: %s", user.Permissions)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Register(context.Background(), "", "a@example.com", "pw", domain.PermissionUser); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pw123456", "superuser"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for unknown permission, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pw123456", domain.PermissionUser); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "other-pass", domain.PermissionAdmin); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestService(repo)

	created, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99", domain.PermissionAdmin)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	raw, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != created.ID {
		t.Fatalf("expected subject %s, got %s", created.ID, claims.Subject)
	}
	if claims.Role != domain.PermissionAdmin {
		t.Fatalf("expected role admin, got %s", claims.Role)
	}
}

// A wrong password and an unknown email must be indistinguishable: the
// service returns the exact same error value for both.
func TestAuthService_Login_NoCredentialOracle(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass", domain.PermissionUser); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, noUser := svc.Login(context.Background(), "ghost@example.com", "badpass")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if noUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPass != noUser {
		t.Fatalf("error values differ: %v vs %v", wrongPass, noUser)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Login(context.Background(), "", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	auth, _ := newTestService(repo)
	svc := NewUserService(repo)

	_, _ = auth.Register(context.Background(), "A", "a@example.com", "pw123456", domain.PermissionUser)
	_, _ = auth.Register(context.Background(), "B", "b@example.com", "pw123456", domain.PermissionAdmin)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.PasswordHash == "" {
			t.Fatalf("repository should return stored hashes to the core")
		}
	}
}
