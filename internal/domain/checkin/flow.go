package checkin

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// State identifies where a check-in flow currently sits.
type State int

// Flow states. One browser session owns one Flow; the session/token context
// survives Reset so a shared device can check in several people in a row.
const (
	StateSearching State = iota
	StateResultsShown
	StateSelected
	StateSubmitting
	StateResult
)

// SearchLimit caps the candidate shortlist per query.
const SearchLimit = 10

// User-facing messages for locally detected failures.
const (
	MsgAccessRequired = "QR 코드를 통해 접속해주세요."
	MsgRequestFailed  = "요청 실패"
)

// Flow errors
var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrNoSelection    = errors.New("no participant selected")
)

// Candidate is one entry of the masked search shortlist.
type Candidate struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PhoneLast4    string `json:"phoneLast4"`
	BaptismalName string `json:"baptismalName"`
	District      string `json:"district"`
}

// SessionRef is the session/token context obtained from the QR or short link.
// For short-link flows the short code itself is the token.
type SessionRef struct {
	SessionID string
	Token     string
}

// Complete reports whether a submission is even possible.
func (s SessionRef) Complete() bool {
	return s.SessionID != "" && s.Token != ""
}

// Submission is the payload handed to the Submitter.
type Submission struct {
	SessionID     string `json:"sessionId"`
	Token         string `json:"token"`
	ParticipantID string `json:"participantId"`
	Phone         string `json:"phone"`
}

// Outcome is the terminal result of a submission attempt.
type Outcome struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Searcher performs the masked name search.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// Submitter delivers a check-in submission. Implementations convert every
// server-side failure into an Outcome; a returned error means the request
// never produced a readable response (transport failure, timeout).
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (Outcome, error)
}

// Flow is the check-in protocol state machine:
//
//	Searching -> ResultsShown -> Selected -> Submitting -> Result
//
// with Reset returning to Searching from any settled state. In simple mode a
// selection submits immediately with an empty phone; in standard mode an
// explicit Submit with a non-blank phone is required. All failures surface as
// an Outcome — the flow never propagates an error to the caller from the
// submission path.
type Flow struct {
	session    SessionRef
	simpleMode bool
	searcher   Searcher
	submitter  Submitter

	mu       sync.Mutex
	state    State
	seq      uint64 // latest issued search sequence; stale responses are dropped
	results  []Candidate
	selected *Candidate
	outcome  *Outcome
}

// NewFlow creates a flow for one check-in screen. The simple-mode flag is
// loaded once at flow start, matching the settings read on page load.
func NewFlow(session SessionRef, simpleMode bool, searcher Searcher, submitter Submitter) *Flow {
	return &Flow{
		session:    session,
		simpleMode: simpleMode,
		searcher:   searcher,
		submitter:  submitter,
		state:      StateSearching,
	}
}

// State returns the current protocol state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Results returns the current shortlist.
func (f *Flow) Results() []Candidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results
}

// Outcome returns the terminal submission outcome, nil before Result.
func (f *Flow) Outcome() *Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Search runs a name query. A blank or whitespace-only query is a no-op and
// never reaches the Searcher. A non-blank query moves the flow to
// ResultsShown even when the shortlist is empty. If a newer query was issued
// while this one was in flight, the stale response is discarded and the state
// left untouched (last request wins by sequence number, not arrival order).
func (f *Flow) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.seq++
	mySeq := f.seq
	f.selected = nil
	f.outcome = nil
	f.mu.Unlock()

	results, err := f.searcher.Search(ctx, query, SearchLimit)

	f.mu.Lock()
	defer f.mu.Unlock()
	if mySeq != f.seq {
		// A newer search superseded this one.
		return nil
	}
	if err != nil {
		return err
	}
	if results == nil {
		results = []Candidate{}
	}
	f.results = results
	f.state = StateResultsShown
	return nil
}

// Select marks a candidate as the chosen participant. In simple mode the
// selection itself completes the check-in with an empty phone value; the
// returned Outcome is non-nil in that case. In standard mode the flow waits
// in Selected for an explicit Submit.
func (f *Flow) Select(ctx context.Context, c Candidate) (*Outcome, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.selected = &c
	f.outcome = nil
	f.state = StateSelected
	simple := f.simpleMode
	f.mu.Unlock()

	if !simple {
		return nil, nil
	}
	return f.submit(ctx, "")
}

// Submit completes a standard-mode check-in with the verification phone.
// A blank phone or missing selection is a no-op, mirroring the disabled
// submit button. Missing session context fails locally without a network
// call. A second Submit while one is pending returns ErrSubmitInFlight.
func (f *Flow) Submit(ctx context.Context, phoneInput string) (*Outcome, error) {
	phoneInput = strings.TrimSpace(phoneInput)

	f.mu.Lock()
	if f.selected == nil {
		f.mu.Unlock()
		return nil, ErrNoSelection
	}
	if phoneInput == "" && !f.simpleMode {
		f.mu.Unlock()
		return nil, nil
	}
	f.mu.Unlock()

	return f.submit(ctx, phoneInput)
}

// submit is the shared submission path for both modes. The selection is
// re-checked under the lock: a Reset may land between the caller's guard and
// this critical section.
func (f *Flow) submit(ctx context.Context, phoneInput string) (*Outcome, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if f.selected == nil {
		f.mu.Unlock()
		return nil, ErrNoSelection
	}
	if !f.session.Complete() {
		// Local guard only: no network call is attempted.
		out := Outcome{OK: false, Message: MsgAccessRequired}
		f.outcome = &out
		f.state = StateResult
		f.mu.Unlock()
		return &out, nil
	}
	sub := Submission{
		SessionID:     f.session.SessionID,
		Token:         f.session.Token,
		ParticipantID: f.selected.ID,
		Phone:         phoneInput,
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	out, err := f.submitter.Submit(ctx, sub)
	if err != nil {
		// Transport-level failure collapses to the generic message.
		out = Outcome{OK: false, Message: MsgRequestFailed}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcome = &out
	f.state = StateResult
	return &out, nil
}

// Reset clears search and selection state and returns to Searching. The
// session/token context is kept so the next person on a shared device can
// check in. Reset during an in-flight submission is rejected.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	f.results = nil
	f.selected = nil
	f.outcome = nil
	f.state = StateSearching
	return nil
}
