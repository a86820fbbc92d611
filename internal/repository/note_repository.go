package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"noti-server/internal/domain"
)

// ErrNotFound is returned by writes that matched no row. Reads signal
// absence with a nil note instead; absence is not an exceptional condition.
var ErrNotFound = errors.New("note not found")

type NoteRepository interface {
	Insert(ctx context.Context, note *domain.Note) (*domain.Note, error)
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	FindAll(ctx context.Context) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	SearchByTitleOrContent(ctx context.Context, keyword string) ([]*domain.Note, error)
	SearchByTitle(ctx context.Context, keyword string) ([]*domain.Note, error)
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Insert(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.ModifiedAt.IsZero() {
		note.ModifiedAt = note.CreatedAt
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (title, content, created_at, modified_at) VALUES (?, ?, ?, ?)`,
		note.Title, note.Content, note.CreatedAt, note.ModifiedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert note: last insert id: %w", err)
	}
	note.ID = id

	return note, nil
}

func (r *noteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, COALESCE(content, ''), created_at, modified_at FROM notes WHERE id = ?`, id)

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	return note, nil
}

func (r *noteRepository) FindAll(ctx context.Context) ([]*domain.Note, error) {
	return r.queryNotes(ctx,
		`SELECT id, title, COALESCE(content, ''), created_at, modified_at
		 FROM notes ORDER BY modified_at DESC`)
}

// Update rewrites title and content only; modified_at is refreshed as a side
// effect of the write. id and created_at are never part of the statement.
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	note.ModifiedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, modified_at = ? WHERE id = ?`,
		note.Title, note.Content, note.ModifiedAt, note.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note %d: %w", note.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update note %d: rows affected: %w", note.ID, err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return note, nil
}

func (r *noteRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete note %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete note %d: rows affected: %w", id, err)
	}
	return affected > 0, nil
}

func (r *noteRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM notes WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check note %d: %w", id, err)
	}
	return exists, nil
}

// SearchByTitleOrContent matches the keyword as a case-sensitive substring of
// either field. instr avoids LIKE wildcard escaping of the keyword.
func (r *noteRepository) SearchByTitleOrContent(ctx context.Context, keyword string) ([]*domain.Note, error) {
	return r.queryNotes(ctx,
		`SELECT id, title, COALESCE(content, ''), created_at, modified_at
		 FROM notes WHERE instr(title, ?) > 0 OR instr(COALESCE(content, ''), ?) > 0`,
		keyword, keyword)
}

// SearchByTitle matches the keyword as a case-insensitive substring of the
// title only.
func (r *noteRepository) SearchByTitle(ctx context.Context, keyword string) ([]*domain.Note, error) {
	return r.queryNotes(ctx,
		`SELECT id, title, COALESCE(content, ''), created_at, modified_at
		 FROM notes WHERE instr(lower(title), lower(?)) > 0`,
		keyword)
}

func (r *noteRepository) queryNotes(ctx context.Context, query string, args ...interface{}) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.ModifiedAt); err != nil {
		return nil, err
	}
	note.CreatedAt = note.CreatedAt.UTC()
	note.ModifiedAt = note.ModifiedAt.UTC()
	return &note, nil
}
