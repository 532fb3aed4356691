package domain

import (
	"errors"
	"time"
)

const (
	PermissionAdmin = "admin"
	PermissionUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("insufficient permission")

// User models an account in the directory. Permissions holds exactly one
// role label; labels have no hierarchy between them.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Permissions  string    `json:"permissions"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// KnownPermission reports whether the label is one the service recognises.
func KnownPermission(p string) bool {
	return p == PermissionAdmin || p == PermissionUser
}
