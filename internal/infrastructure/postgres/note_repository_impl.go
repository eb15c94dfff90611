package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/notes-api/internal/domain/entity"
	"github.com/oksasatya/notes-api/internal/domain/repository"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notes (owner_email, title, content, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, n.OwnerEmail, n.Title, n.Content, n.Category)

	return row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_email, title, content, category, created_at, updated_at
		FROM notes
		WHERE owner_email = $1
		ORDER BY created_at DESC
	`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*entity.Note, 0)
	for rows.Next() {
		n := &entity.Note{}
		if err := rows.Scan(&n.ID, &n.OwnerEmail, &n.Title, &n.Content, &n.Category, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update rewrites title/content/category of the note matching both id and
// owner email. The owner filter is what keeps one user from touching another
// user's note; a wrong owner looks exactly like a missing id.
func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE notes
		SET title = $1, content = $2, category = $3, updated_at = now()
		WHERE id = $4 AND owner_email = $5
		RETURNING created_at, updated_at
	`, n.Title, n.Content, n.Category, n.ID, n.OwnerEmail)

	if err := row.Scan(&n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerEmail string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM notes WHERE id = $1 AND owner_email = $2
	`, id, ownerEmail)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NoteRepository = (*NoteRepository)(nil)
