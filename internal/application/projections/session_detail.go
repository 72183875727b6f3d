package projections

import (
	"context"

	domainSession "qrcheckin/internal/domain/session"
)

// SessionDetail is the admin view of one session, including the short code
// and the derived check-in URL for QR rendering.
type SessionDetail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	SessionDate string `json:"sessionDate"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	Status      string `json:"status"`
	ShortCode   string `json:"shortCode"`
	CheckinURL  string `json:"checkinUrl"`
	Attended    int    `json:"attended"`
}

// SessionDetailQuery selects the session.
type SessionDetailQuery struct {
	SessionID string
	BaseURL   string
}

// SessionDetailSessionStore is the session surface for the detail view.
type SessionDetailSessionStore interface {
	GetByID(ctx context.Context, id string) (domainSession.Session, error)
}

// SessionDetailAttendanceStore counts check-ins for the session.
type SessionDetailAttendanceStore interface {
	CountBySessionID(ctx context.Context, sessionID string) (int, error)
}

// SessionDetailDeps holds dependencies for the session detail view.
type SessionDetailDeps struct {
	SessionStore    SessionDetailSessionStore
	AttendanceStore SessionDetailAttendanceStore
}

// QuerySessionDetail builds the admin session view. The token hash never
// leaves the store layer; only the displayable short code and its URL do.
func QuerySessionDetail(ctx context.Context, query SessionDetailQuery, deps SessionDetailDeps) (SessionDetail, error) {
	sess, err := deps.SessionStore.GetByID(ctx, query.SessionID)
	if err != nil {
		return SessionDetail{}, err
	}
	count, err := deps.AttendanceStore.CountBySessionID(ctx, sess.ID)
	if err != nil {
		return SessionDetail{}, err
	}
	return SessionDetail{
		ID:          sess.ID,
		Title:       sess.Title,
		SessionDate: sess.SessionDate,
		StartsAt:    sess.StartsAt,
		EndsAt:      sess.EndsAt,
		Status:      sess.Status,
		ShortCode:   sess.ShortCode,
		CheckinURL:  domainSession.CheckinURL(query.BaseURL, sess.ShortCode),
		Attended:    count,
	}, nil
}
