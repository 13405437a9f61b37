package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by CreateUser when the email is already in use.
	ErrEmailTaken = errors.New("email already taken")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindFirstByRole returns the oldest user holding role. ok is false when
	// no user holds it; that is not an error.
	FindFirstByRole(ctx context.Context, role string) (id uuid.UUID, ok bool, err error)
}
