package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainParticipant "qrcheckin/internal/domain/participant"
)

// AddParticipantInput holds the roster entry fields from the admin form.
type AddParticipantInput struct {
	Name          string
	Phone         string
	BaptismalName string
	District      string
}

// AddParticipantStore is the participant surface needed by AddParticipant.
type AddParticipantStore interface {
	GetByNameAndPhoneHash(ctx context.Context, name, phoneHash string) (domainParticipant.Participant, error)
	Save(ctx context.Context, p domainParticipant.Participant) error
}

// AddParticipantDeps holds dependencies for AddParticipant.
type AddParticipantDeps struct {
	ParticipantStore AddParticipantStore
	HashPhone        domainParticipant.HashFunc
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteAddParticipant registers one participant. Two entries are the same
// person when both name and hashed phone match; re-adding one returns
// domain ErrDuplicate.
//
// PRE: deps.ParticipantStore, HashPhone, GenerateID, Now are non-nil
// POST: On success the stored participant carries PhoneHash and PhoneLast4,
// never the raw number
func ExecuteAddParticipant(ctx context.Context, input AddParticipantInput, deps AddParticipantDeps) (domainParticipant.Participant, error) {
	p, err := domainParticipant.New(
		deps.GenerateID(),
		input.Name,
		input.Phone,
		input.BaptismalName,
		input.District,
		deps.HashPhone,
	)
	if err != nil {
		return domainParticipant.Participant{}, err
	}
	p.CreatedAt = deps.Now().UTC().Format(time.RFC3339)

	_, err = deps.ParticipantStore.GetByNameAndPhoneHash(ctx, p.Name, p.PhoneHash)
	if err == nil {
		return domainParticipant.Participant{}, domainParticipant.ErrDuplicate
	}
	if !errors.Is(err, domainParticipant.ErrNotFound) {
		return domainParticipant.Participant{}, err
	}

	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return domainParticipant.Participant{}, err
	}

	slog.Info("participant_event", "event", "participant_added",
		"participant_id", p.ID, "district", p.District)

	return p, nil
}
