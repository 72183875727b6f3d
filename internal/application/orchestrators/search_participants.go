package orchestrators

import (
	"context"
	"strings"

	domain "qrcheckin/internal/domain/participant"
)

// Search limits: the public endpoint clamps whatever the caller asks for.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 20
)

// SearchParticipantsInput carries input for the masked name search.
type SearchParticipantsInput struct {
	Query string
	Limit int
}

// SearchParticipantsResult carries the masked shortlist.
type SearchParticipantsResult struct {
	Items []domain.SearchItem
}

// ParticipantSearchStore is the store surface needed for name search.
type ParticipantSearchStore interface {
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Participant, error)
}

// SearchParticipantsDeps holds dependencies for SearchParticipants.
type SearchParticipantsDeps struct {
	ParticipantStore ParticipantSearchStore
}

// ExecuteSearchParticipants performs the public name search for the check-in
// shortlist. A blank or whitespace-only query returns an empty list without
// touching the store. Results only ever carry the masked phone fragment.
// PRE: Deps.ParticipantStore is non-nil
// POST: len(Items) <= clamped limit; full phone numbers never leave
func ExecuteSearchParticipants(ctx context.Context, input SearchParticipantsInput, deps SearchParticipantsDeps) (SearchParticipantsResult, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return SearchParticipantsResult{Items: []domain.SearchItem{}}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	matches, err := deps.ParticipantStore.SearchByName(ctx, query, limit)
	if err != nil {
		return SearchParticipantsResult{}, err
	}

	items := make([]domain.SearchItem, 0, len(matches))
	for _, p := range matches {
		items = append(items, p.PublicItem())
	}
	return SearchParticipantsResult{Items: items}, nil
}
