package orchestrators

import (
	"context"
	"strings"

	domainParticipant "qrcheckin/internal/domain/participant"
	domainSession "qrcheckin/internal/domain/session"
)

// mockRosterStore is an in-memory participant store shared by the
// orchestrator tests. searchCalls counts SearchByName invocations so tests
// can assert the blank-query fast path never reaches the store.
type mockRosterStore struct {
	participants []domainParticipant.Participant
	searchCalls  int
	saveErr      error
}

func (m *mockRosterStore) SearchByName(_ context.Context, query string, limit int) ([]domainParticipant.Participant, error) {
	m.searchCalls++
	var out []domainParticipant.Participant
	for _, p := range m.participants {
		if strings.Contains(p.Name, query) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockRosterStore) GetByNameAndPhoneHash(_ context.Context, name, phoneHash string) (domainParticipant.Participant, error) {
	for _, p := range m.participants {
		if p.Name == name && p.PhoneHash == phoneHash {
			return p, nil
		}
	}
	return domainParticipant.Participant{}, domainParticipant.ErrNotFound
}

func (m *mockRosterStore) Save(_ context.Context, p domainParticipant.Participant) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.participants = append(m.participants, p)
	return nil
}

func (m *mockRosterStore) DeleteAll(_ context.Context) error {
	m.participants = nil
	return nil
}

// mockSessionStore is an in-memory session store for session orchestrator
// tests.
type mockSessionStore struct {
	sessions map[string]domainSession.Session // keyed by ID
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]domainSession.Session{}}
}

func (m *mockSessionStore) GetByShortCode(_ context.Context, code string) (domainSession.Session, error) {
	for _, s := range m.sessions {
		if s.ShortCode == code {
			return s, nil
		}
	}
	return domainSession.Session{}, domainSession.ErrNotFound
}

func (m *mockSessionStore) Save(_ context.Context, s domainSession.Session) error {
	if _, exists := m.sessions[s.ID]; exists {
		return domainSession.ErrDuplicateID
	}
	m.sessions[s.ID] = s
	return nil
}
