package participant

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"qrcheckin/internal/adapters/storage"
	domain "qrcheckin/internal/domain/participant"
)

const columns = "id, name, phone_hash, phone_last4, baptismal_name, district, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Participant store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanParticipant(scan func(...any) error) (domain.Participant, error) {
	var p domain.Participant
	err := scan(&p.ID, &p.Name, &p.PhoneHash, &p.PhoneLast4, &p.BaptismalName, &p.District, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Participant{}, domain.ErrNotFound
	}
	return p, err
}

// GetByID retrieves a Participant by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM participants WHERE id = ?", id)
	return scanParticipant(row.Scan)
}

// GetByNameAndPhoneHash finds the participant with the exact name and phone
// digest, used for duplicate detection on add and import.
// PRE: name and phoneHash are non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByNameAndPhoneHash(ctx context.Context, name, phoneHash string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+columns+" FROM participants WHERE name = ? AND phone_hash = ? LIMIT 1",
		name, phoneHash)
	return scanParticipant(row.Scan)
}

// SearchByName finds participants whose name matches the query
// (case-insensitive LIKE).
// PRE: query is non-empty, limit > 0
// POST: Returns matching participants ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+columns+" FROM participants WHERE name LIKE ? ORDER BY name LIMIT ?",
		"%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// List returns the full roster ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Participant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+columns+" FROM participants ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]domain.Participant, error) {
	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the roster size.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM participants").Scan(&n)
	return n, err
}

// Save persists a Participant (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, p domain.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}
	createdAt := p.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participants (id, name, phone_hash, phone_last4, baptismal_name, district, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			phone_hash=excluded.phone_hash,
			phone_last4=excluded.phone_last4,
			baptismal_name=excluded.baptismal_name,
			district=excluded.district
	`, p.ID, p.Name, p.PhoneHash, p.PhoneLast4, p.BaptismalName, p.District, createdAt)
	return err
}

// Delete removes a participant. Deleting a missing id is an error: the
// directory contract is strict, not delete-if-exists.
// PRE: id is non-empty
// POST: Row removed, or domain.ErrNotFound when absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
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

// DeleteAll wipes the roster. Only the replace-all import path calls this,
// behind an explicit confirmation.
func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM participants")
	return err
}
