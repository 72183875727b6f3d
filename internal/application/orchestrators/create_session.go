package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainSession "qrcheckin/internal/domain/session"
)

// shortCodeAttempts bounds collision retries when minting a session code.
// The code space is 32^8, so a second attempt is already vanishingly rare.
const shortCodeAttempts = 5

// CreateSessionInput holds the admin form fields for a new session.
type CreateSessionInput struct {
	Title       string
	SessionDate string // YYYY-MM-DD
	StartsAt    string
	EndsAt      string
}

// CreateSessionStore is the session surface needed by CreateSession.
type CreateSessionStore interface {
	GetByShortCode(ctx context.Context, shortCode string) (domainSession.Session, error)
	Save(ctx context.Context, s domainSession.Session) error
}

// CreateSessionDeps holds dependencies for CreateSession.
type CreateSessionDeps struct {
	SessionStore CreateSessionStore
	HashToken    func(string) string
	Now          func() time.Time
}

// ExecuteCreateSession mints a new active session. The session ID is derived
// from date and title, so creating the same session twice surfaces the
// domain ErrDuplicateID from the store. The short code is retried on
// collision; only its hash is persisted alongside the displayable code.
//
// POST: Returned session is ACTIVE with an 8-character short code
func ExecuteCreateSession(ctx context.Context, input CreateSessionInput, deps CreateSessionDeps) (domainSession.Session, error) {
	sess := domainSession.Session{
		ID:          domainSession.SlugID(input.Title, input.SessionDate),
		Title:       input.Title,
		SessionDate: input.SessionDate,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Status:      domainSession.StatusActive,
		CreatedAt:   deps.Now().UTC().Format(time.RFC3339),
	}

	for attempt := 0; attempt < shortCodeAttempts; attempt++ {
		code, err := domainSession.NewShortCode()
		if err != nil {
			return domainSession.Session{}, err
		}
		if _, err := deps.SessionStore.GetByShortCode(ctx, code); err == nil {
			continue
		} else if !errors.Is(err, domainSession.ErrNotFound) {
			return domainSession.Session{}, err
		}
		sess.ShortCode = code
		break
	}
	if sess.ShortCode == "" {
		return domainSession.Session{}, errors.New("could not allocate a unique short code")
	}
	sess.TokenHash = deps.HashToken(sess.ShortCode)

	if err := sess.Validate(); err != nil {
		return domainSession.Session{}, err
	}
	if err := deps.SessionStore.Save(ctx, sess); err != nil {
		return domainSession.Session{}, err
	}

	slog.Info("session_event", "event", "session_created",
		"session_id", sess.ID, "date", sess.SessionDate)

	return sess, nil
}
