package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoteNotFound is the repository-level absence signal. The service
// decides whether it becomes a 404 or, for foreign notes, a 403.
var ErrNoteNotFound = errors.New("note not found")

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, ownerID string, p Payload) (Note, error) {
	now := time.Now().UTC()
	n := Note{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     p.Title,
		Content:   p.Content,
		Tags:      p.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO notes (id, owner_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.OwnerID, n.Title, n.Content, n.Tags, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// Get fetches a note by id regardless of owner. Ownership is the
// service's call; the row's owner_id is needed to make it.
func (r *Repository) Get(ctx context.Context, id string) (Note, error) {
	var n Note
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE id = $1
	`, id).Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.Tags, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNoteNotFound
	}
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

func (r *Repository) Update(ctx context.Context, id string, p Payload) (Note, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	var n Note
	err := r.pool.QueryRow(ctx, `
		UPDATE notes
		SET title = $1, content = $2, tags = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, owner_id, title, content, tags, created_at, updated_at
	`, p.Title, p.Content, tags, time.Now().UTC(), id).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.Tags, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNoteNotFound
	}
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// List returns the owner's notes, newest first. The tag filter is exact
// array membership; the search filter is a case-insensitive substring
// match on title or content.
func (r *Repository) List(ctx context.Context, ownerID string, f Filter) ([]Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE owner_id = $1
		  AND ($2 = '' OR $2 = ANY(tags))
		  AND ($3 = '' OR title ILIKE $4 OR content ILIKE $4)
		ORDER BY created_at DESC, id DESC
	`, ownerID, f.Tag, f.Search, "%"+escapeLike(f.Search)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func scanNotes(rows pgx.Rows) ([]Note, error) {
	out := make([]Note, 0, 32)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.Tags, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// escapeLike neutralizes LIKE pattern characters so the search term is
// matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
