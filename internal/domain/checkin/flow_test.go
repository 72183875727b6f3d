package checkin

import (
	"context"
	"sync"
	"testing"
	"time"
)

type mockSearcher struct {
	mu      sync.Mutex
	calls   int
	results map[string][]Candidate
	block   chan struct{} // when set, Search waits until the channel closes
}

// Search returns the seeded shortlist for the query.
// PRE: query is non-blank
// POST: Call count is incremented
func (m *mockSearcher) Search(_ context.Context, query string, _ int) ([]Candidate, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	return m.results[query], nil
}

type mockSubmitter struct {
	mu      sync.Mutex
	calls   int
	last    Submission
	outcome Outcome
	err     error
}

// Submit records the submission and returns the seeded outcome.
// PRE: sub carries a session and participant
// POST: Call count is incremented
func (m *mockSubmitter) Submit(_ context.Context, sub Submission) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = sub
	return m.outcome, m.err
}

func session() SessionRef {
	return SessionRef{SessionID: "2024-03-10-주일-미사", Token: "ABCD2345"}
}

// TestSearch_BlankQueryIsNoOp verifies whitespace queries never reach the searcher.
func TestSearch_BlankQueryIsNoOp(t *testing.T) {
	searcher := &mockSearcher{}
	f := NewFlow(session(), false, searcher, &mockSubmitter{})

	for _, q := range []string{"", "   ", "\t"} {
		if err := f.Search(context.Background(), q); err != nil {
			t.Fatalf("blank query %q: %v", q, err)
		}
	}
	if searcher.calls != 0 {
		t.Fatalf("searcher calls=%d want 0", searcher.calls)
	}
	if f.State() != StateSearching {
		t.Fatalf("state=%v want Searching", f.State())
	}
}

// TestSearch_EmptyResultsStillShown verifies zero results is a displayable state.
func TestSearch_EmptyResultsStillShown(t *testing.T) {
	f := NewFlow(session(), false, &mockSearcher{}, &mockSubmitter{})

	if err := f.Search(context.Background(), "없는이름"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if f.State() != StateResultsShown {
		t.Fatalf("state=%v want ResultsShown", f.State())
	}
	if got := f.Results(); got == nil || len(got) != 0 {
		t.Fatalf("results=%v want empty non-nil", got)
	}
}

// TestSimpleMode_SelectionSubmitsImmediately verifies selection alone fires a
// submission with an empty phone value.
func TestSimpleMode_SelectionSubmitsImmediately(t *testing.T) {
	sub := &mockSubmitter{outcome: Outcome{OK: true, Message: "출석 완료"}}
	f := NewFlow(session(), true, &mockSearcher{}, sub)

	out, err := f.Select(context.Background(), Candidate{ID: "42", Name: "홍길동"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out == nil || !out.OK {
		t.Fatalf("outcome=%+v want immediate success", out)
	}
	if sub.calls != 1 {
		t.Fatalf("submitter calls=%d want 1", sub.calls)
	}
	if sub.last.ParticipantID != "42" || sub.last.Phone != "" {
		t.Fatalf("submission=%+v want participant 42 with empty phone", sub.last)
	}
	if f.State() != StateResult {
		t.Fatalf("state=%v want Result", f.State())
	}
}

// TestStandardMode_WaitsForExplicitSubmit verifies no submission happens until
// a non-blank phone is provided and Submit is invoked.
func TestStandardMode_WaitsForExplicitSubmit(t *testing.T) {
	sub := &mockSubmitter{outcome: Outcome{OK: true, Message: "출석 완료"}}
	f := NewFlow(session(), false, &mockSearcher{}, sub)

	out, err := f.Select(context.Background(), Candidate{ID: "42", Name: "홍길동"})
	if err != nil || out != nil {
		t.Fatalf("select out=%+v err=%v want pending", out, err)
	}
	if sub.calls != 0 {
		t.Fatalf("submitter calls=%d want 0 after selection", sub.calls)
	}

	// Blank phone is a no-op.
	out, err = f.Submit(context.Background(), "   ")
	if err != nil || out != nil || sub.calls != 0 {
		t.Fatalf("blank phone out=%+v err=%v calls=%d want no-op", out, err, sub.calls)
	}

	out, err = f.Submit(context.Background(), "010-1234-5678")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out == nil || !out.OK || sub.calls != 1 {
		t.Fatalf("out=%+v calls=%d want one successful submit", out, sub.calls)
	}
	if sub.last.Phone != "010-1234-5678" {
		t.Fatalf("phone=%q", sub.last.Phone)
	}
}

// TestSubmit_MissingSessionContext verifies the local access-required guard
// fires with zero network calls.
func TestSubmit_MissingSessionContext(t *testing.T) {
	sub := &mockSubmitter{}
	f := NewFlow(SessionRef{}, false, &mockSearcher{}, sub)

	if _, err := f.Select(context.Background(), Candidate{ID: "42"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	out, err := f.Submit(context.Background(), "01012345678")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out == nil || out.OK || out.Message != MsgAccessRequired {
		t.Fatalf("out=%+v want access-required failure", out)
	}
	if sub.calls != 0 {
		t.Fatalf("submitter calls=%d want 0", sub.calls)
	}
}

// TestSubmit_TransportErrorCollapsesToGenericFailure verifies submitter errors
// never escape the flow.
func TestSubmit_TransportErrorCollapsesToGenericFailure(t *testing.T) {
	sub := &mockSubmitter{err: context.DeadlineExceeded}
	f := NewFlow(session(), true, &mockSearcher{}, sub)

	out, err := f.Select(context.Background(), Candidate{ID: "42"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out == nil || out.OK || out.Message != MsgRequestFailed {
		t.Fatalf("out=%+v want generic failure", out)
	}
	if f.State() != StateResult {
		t.Fatalf("state=%v want Result", f.State())
	}
}

// TestSearch_StaleResponseDiscarded verifies a slow earlier search cannot
// overwrite a later one's results.
func TestSearch_StaleResponseDiscarded(t *testing.T) {
	block := make(chan struct{})
	searcher := &mockSearcher{
		results: map[string][]Candidate{
			"김": {{ID: "1", Name: "김철수"}},
			"박": {{ID: "2", Name: "박영희"}},
		},
		block: block,
	}
	f := NewFlow(session(), false, searcher, &mockSubmitter{})

	done := make(chan error, 1)
	go func() { done <- f.Search(context.Background(), "김") }()

	// Wait for the first search to be in flight, then run a newer one.
	for {
		searcher.mu.Lock()
		started := searcher.calls == 1
		searcher.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	searcher.mu.Lock()
	searcher.block = nil
	searcher.mu.Unlock()
	if err := f.Search(context.Background(), "박"); err != nil {
		t.Fatalf("second search: %v", err)
	}
	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first search: %v", err)
	}

	res := f.Results()
	if len(res) != 1 || res[0].ID != "2" {
		t.Fatalf("results=%+v want the newer query's results", res)
	}
}

// TestReset_KeepsSessionContext verifies reset clears flow state but allows a
// further check-in against the same session.
func TestReset_KeepsSessionContext(t *testing.T) {
	sub := &mockSubmitter{outcome: Outcome{OK: true, Message: "출석 완료"}}
	f := NewFlow(session(), true, &mockSearcher{}, sub)

	if _, err := f.Select(context.Background(), Candidate{ID: "42"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := f.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if f.State() != StateSearching || f.Outcome() != nil || f.Results() != nil {
		t.Fatalf("reset did not clear flow state")
	}

	// A family member can check in next on the same device.
	out, err := f.Select(context.Background(), Candidate{ID: "43"})
	if err != nil || out == nil || !out.OK {
		t.Fatalf("second check-in out=%+v err=%v", out, err)
	}
	if sub.calls != 2 {
		t.Fatalf("submitter calls=%d want 2", sub.calls)
	}
}

// TestSubmit_SelectionClearedBeforeCriticalSection verifies a Reset landing
// between Submit's guard and the submission path yields ErrNoSelection rather
// than dereferencing a nil selection.
func TestSubmit_SelectionClearedBeforeCriticalSection(t *testing.T) {
	sub := &mockSubmitter{outcome: Outcome{OK: true, Message: "출석 완료"}}
	f := NewFlow(session(), false, &mockSearcher{}, sub)
	if _, err := f.Select(context.Background(), Candidate{ID: "42"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	// Clear the selection as a concurrent Reset would, then enter the
	// submission path directly past Submit's guard.
	f.mu.Lock()
	f.selected = nil
	f.mu.Unlock()

	out, err := f.submit(context.Background(), "01012345678")
	if err != ErrNoSelection {
		t.Fatalf("err=%v want ErrNoSelection", err)
	}
	if out != nil || sub.calls != 0 {
		t.Fatalf("out=%+v calls=%d want no submission", out, sub.calls)
	}
}

// TestSubmit_SecondAttemptWhileInFlightRejected verifies the Submitting phase
// is exclusive.
func TestSubmit_SecondAttemptWhileInFlightRejected(t *testing.T) {
	f := NewFlow(session(), false, &mockSearcher{}, &mockSubmitter{})
	if _, err := f.Select(context.Background(), Candidate{ID: "42"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	// Force the Submitting state directly to simulate an in-flight request.
	f.mu.Lock()
	f.state = StateSubmitting
	f.mu.Unlock()

	if _, err := f.Submit(context.Background(), "01012345678"); err != ErrSubmitInFlight {
		t.Fatalf("err=%v want ErrSubmitInFlight", err)
	}
	if err := f.Reset(); err != ErrSubmitInFlight {
		t.Fatalf("reset err=%v want ErrSubmitInFlight", err)
	}
}
