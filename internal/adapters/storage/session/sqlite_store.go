package session

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"qrcheckin/internal/adapters/storage"
	domain "qrcheckin/internal/domain/session"
)

const columns = "id, title, session_date, starts_at, ends_at, token_hash, short_code, status, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanSession(scan func(...any) error) (domain.Session, error) {
	var s domain.Session
	err := scan(&s.ID, &s.Title, &s.SessionDate, &s.StartsAt, &s.EndsAt, &s.TokenHash, &s.ShortCode, &s.Status, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrNotFound
	}
	return s, err
}

// GetByID retrieves a Session by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM sessions WHERE id = ?", id)
	return scanSession(row.Scan)
}

// GetByShortCode retrieves a Session by its public short code. Codes are
// stored uppercase; lookup is case-insensitive for hand-typed input.
// PRE: shortCode is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByShortCode(ctx context.Context, shortCode string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+columns+" FROM sessions WHERE short_code = ?",
		strings.ToUpper(shortCode))
	return scanSession(row.Scan)
}

// List returns all sessions, newest date first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+columns+" FROM sessions ORDER BY session_date DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	if out == nil {
		out = []domain.Session{}
	}
	return out, rows.Err()
}

// Save inserts a session. Sessions are never updated in place; status moves
// through UpdateStatus only.
// PRE: entity has been validated
// POST: Row inserted; domain.ErrDuplicateID when the slug ID already exists
func (s *SQLiteStore) Save(ctx context.Context, sess domain.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, title, session_date, starts_at, ends_at, token_hash, short_code, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.Title, sess.SessionDate, sess.StartsAt, sess.EndsAt, sess.TokenHash, sess.ShortCode, sess.Status, sess.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: sessions.id") {
		return domain.ErrDuplicateID
	}
	return err
}

// UpdateStatus moves a session to the given status.
// PRE: id is non-empty, status is a valid session status
// POST: Row updated, or domain.ErrNotFound when absent
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE sessions SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a session; strict on missing ids like the participant store.
// PRE: id is non-empty
// POST: Row removed, or domain.ErrNotFound when absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
