package auth

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the user store the service talks to. Implementations
// return ErrUserNotFound for a missing row, ErrEmailTaken for a
// duplicate email on Insert, and wrap ErrDirectory for anything else.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Insert(ctx context.Context, u *User) error
}
