package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/session-gate/internal/models"
)

// CreateNote сохраняет новую заметку пользователя и возвращает её.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	created := note
	created.UID = uuid.New().String()

	query := `INSERT INTO notes (uid, user_uid, title, body)
			  VALUES ($1, $2, $3, $4)
			  RETURNING created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		created.UID, created.UserUID, created.Title, created.Body).Scan(&created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListNotesByUser возвращает заметки пользователя в порядке создания.
func (s *Storage) ListNotesByUser(ctx context.Context, userUID string) ([]*models.Note, error) {
	const op = "storage.ListNotesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, title, body, created_at
			  FROM notes
			  WHERE user_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Note
	for rows.Next() {
		var n models.Note
		if err = rows.Scan(&n.UID, &n.UserUID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
