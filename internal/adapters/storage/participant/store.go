package participant

import (
	"context"

	domain "qrcheckin/internal/domain/participant"
)

// Store persists Participant state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Participant, error)
	GetByNameAndPhoneHash(ctx context.Context, name, phoneHash string) (domain.Participant, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, value domain.Participant) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
