package repository

import (
	"context"

	"github.com/oksasatya/notes-api/internal/domain/entity"
)

// NoteRepository defines owner-scoped note persistence. Update and Delete
// match on both id and owner email and return ErrNotFound when zero rows
// matched.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id, ownerEmail string) error
}
