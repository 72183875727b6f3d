package attendance

import (
	"context"

	domain "qrcheckin/internal/domain/attendance"
)

// Store persists attendance Records. Records are append-only: Save never
// updates, and the only removals are the admin purge and retention paths.
type Store interface {
	Save(ctx context.Context, value domain.Record) error
	List(ctx context.Context) ([]domain.Record, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.Record, error)
	CountBySessionID(ctx context.Context, sessionID string) (int, error)
	DeleteBySessionID(ctx context.Context, sessionID string) (int, error)
	// DeleteByDateRange removes records with checked_in_at in the half-open
	// interval [start, end). Callers owning an inclusive date range must
	// convert the end date to the day after before calling.
	DeleteByDateRange(ctx context.Context, start, end string) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff string) (int, error)
}
