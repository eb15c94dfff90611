package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/notes-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches the lookup.
// For notes this covers both "does not exist" and "exists but belongs to
// someone else"; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by UserRepository.Create when the email
// unique index rejects the insert.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
