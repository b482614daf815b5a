package contact

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	storage "clubsite/internal/adapters/storage"
	domain "clubsite/internal/domain/contact"
)

type sqliteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore returns a Store backed by SQLite.
func NewSQLiteStore(db storage.SQLDB) Store {
	return &sqliteStore{db: db}
}

const selectColumns = `SELECT id, name, reply_to, message, status, message_id, submitted_at FROM contact_submission`

// Save inserts or updates a Submission.
// PRE: sub.ID is non-empty
// POST: row upserted into contact_submission
func (s *sqliteStore) Save(ctx context.Context, sub domain.Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submission (id, name, reply_to, message, status, message_id, submitted_at)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			message_id = excluded.message_id`,
		sub.ID,
		sub.Name,
		sub.ReplyTo,
		sub.Message,
		sub.Status,
		sub.MessageID,
		sub.SubmittedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("contact save: %w", err)
	}
	return nil
}

// GetByID retrieves a Submission by its ID.
// PRE: id is non-empty
// POST: returns domain.Submission or error if not found
func (s *sqliteStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return domain.Submission{}, fmt.Errorf("contact submission not found: %s", id)
	}
	if err != nil {
		return domain.Submission{}, fmt.Errorf("contact get: %w", err)
	}
	return sub, nil
}

// List returns submissions, newest first.
// PRE: none
// POST: returns matching submissions ordered by submitted_at descending
func (s *sqliteStore) List(ctx context.Context, filter ListFilter) ([]domain.Submission, error) {
	query := selectColumns
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY submitted_at DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("contact list: %w", err)
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("contact list scan: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (domain.Submission, error) {
	var sub domain.Submission
	var submittedAt string
	err := row.Scan(
		&sub.ID,
		&sub.Name,
		&sub.ReplyTo,
		&sub.Message,
		&sub.Status,
		&sub.MessageID,
		&submittedAt,
	)
	if err != nil {
		return domain.Submission{}, err
	}
	sub.SubmittedAt, _ = time.Parse(time.RFC3339, submittedAt)
	return sub, nil
}
