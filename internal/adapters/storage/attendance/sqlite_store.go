package attendance

import (
	"context"
	"database/sql"
	"strings"

	"qrcheckin/internal/adapters/storage"
	domain "qrcheckin/internal/domain/attendance"
)

const columns = "id, session_id, session_title, participant_id, name, phone, phone_last4, district, checked_in_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Record store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends a check-in record. The UNIQUE(session_id, participant_id)
// constraint is the duplicate-check-in guard; a violation surfaces as
// domain.ErrDuplicate so the orchestrator can answer with the proper message.
// PRE: entity has been validated
// POST: Row inserted, or domain.ErrDuplicate on a repeat check-in
func (s *SQLiteStore) Save(ctx context.Context, r domain.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (id, session_id, session_title, participant_id, name, phone, phone_last4, district, checked_in_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.SessionID, r.SessionTitle, r.ParticipantID, r.Name, r.Phone, r.PhoneLast4, r.District, r.CheckedInAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrDuplicate
	}
	return err
}

// List returns all records, newest check-in first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+columns+" FROM attendance ORDER BY checked_in_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListBySessionID returns records for one session, newest first.
// PRE: sessionID is non-empty
func (s *SQLiteStore) ListBySessionID(ctx context.Context, sessionID string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+columns+" FROM attendance WHERE session_id = ? ORDER BY checked_in_at DESC, id DESC",
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]domain.Record, error) {
	var out []domain.Record
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.ID, &r.SessionID, &r.SessionTitle, &r.ParticipantID, &r.Name, &r.Phone, &r.PhoneLast4, &r.District, &r.CheckedInAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if out == nil {
		out = []domain.Record{}
	}
	return out, rows.Err()
}

// CountBySessionID returns the number of check-ins for one session.
func (s *SQLiteStore) CountBySessionID(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE session_id = ?", sessionID).Scan(&n)
	return n, err
}

// DeleteBySessionID removes every record for one session.
// POST: Returns the number of rows removed
func (s *SQLiteStore) DeleteBySessionID(ctx context.Context, sessionID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM attendance WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// DeleteByDateRange removes records in the half-open interval [start, end).
// Timestamps are TEXT in attendance.TimeLayout, so lexical comparison matches
// chronological order.
// PRE: start and end are date or timestamp strings; end is exclusive
// POST: Returns the number of rows removed
func (s *SQLiteStore) DeleteByDateRange(ctx context.Context, start, end string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM attendance WHERE checked_in_at >= ? AND checked_in_at < ?",
		start, end)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// DeleteOlderThan removes records checked in strictly before the cutoff.
// Used by the retention cleanup job.
// POST: Returns the number of rows removed
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM attendance WHERE checked_in_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
