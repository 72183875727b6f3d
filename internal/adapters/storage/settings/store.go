package settings

import (
	"context"

	domain "qrcheckin/internal/domain/settings"
)

// Store persists the key/value settings table.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	GetAll(ctx context.Context) (domain.Settings, error)
	Set(ctx context.Context, key, value string) error
}
