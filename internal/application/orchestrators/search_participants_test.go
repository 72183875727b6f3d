package orchestrators

import (
	"context"
	"fmt"
	"testing"

	domainParticipant "qrcheckin/internal/domain/participant"
	"qrcheckin/internal/hashing"
)

func rosterFixture(t *testing.T, names ...string) *mockRosterStore {
	t.Helper()
	hasher := hashing.New("test-salt")
	store := &mockRosterStore{}
	for i, name := range names {
		p, err := domainParticipant.New(
			name, name, fmt.Sprintf("010-1234-%04d", i), "", "", hasher.Sum)
		if err != nil {
			t.Fatalf("fixture %q: %v", name, err)
		}
		store.participants = append(store.participants, p)
	}
	return store
}

func TestExecuteSearchParticipants(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query skips the store", func(t *testing.T) {
		store := rosterFixture(t, "김철수")
		res, err := ExecuteSearchParticipants(ctx, SearchParticipantsInput{Query: "   "}, SearchParticipantsDeps{ParticipantStore: store})
		if err != nil {
			t.Fatalf("ExecuteSearchParticipants: %v", err)
		}
		if res.Items == nil || len(res.Items) != 0 {
			t.Errorf("got %v, want empty non-nil slice", res.Items)
		}
		if store.searchCalls != 0 {
			t.Errorf("store called %d times for blank query", store.searchCalls)
		}
	})

	t.Run("substring match with masked phone", func(t *testing.T) {
		store := rosterFixture(t, "김철수", "김영희", "박민수")
		res, err := ExecuteSearchParticipants(ctx, SearchParticipantsInput{Query: "김"}, SearchParticipantsDeps{ParticipantStore: store})
		if err != nil {
			t.Fatalf("ExecuteSearchParticipants: %v", err)
		}
		if len(res.Items) != 2 {
			t.Fatalf("got %d items, want 2", len(res.Items))
		}
		for _, item := range res.Items {
			if len(item.PhoneLast4) != 4 {
				t.Errorf("item %q leaked phone data: %+v", item.Name, item)
			}
		}
	})

	t.Run("limit is clamped to the maximum", func(t *testing.T) {
		store := rosterFixture(t, "김철수")
		if _, err := ExecuteSearchParticipants(ctx, SearchParticipantsInput{Query: "김", Limit: 500}, SearchParticipantsDeps{ParticipantStore: store}); err != nil {
			t.Fatalf("ExecuteSearchParticipants: %v", err)
		}
	})
}
