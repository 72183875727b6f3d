package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainAttendance "qrcheckin/internal/domain/attendance"
	domainParticipant "qrcheckin/internal/domain/participant"
	domainSession "qrcheckin/internal/domain/session"
	domainSettings "qrcheckin/internal/domain/settings"
	"qrcheckin/internal/domain/phone"
)

// Check-in outcome messages. The public flow renders these verbatim.
const (
	MsgInvalidCode     = "유효하지 않은 출석 코드입니다."
	MsgSessionClosed   = "출석이 마감되었습니다."
	MsgSessionMismatch = "세션 정보가 일치하지 않습니다."
	MsgNoParticipant   = "선택한 참가자를 찾을 수 없습니다."
	MsgCheckPhone      = "전화번호를 확인하세요."
	MsgPhoneMismatch   = "전화번호가 일치하지 않습니다."
	MsgAlreadyChecked  = "이미 출석 처리되었습니다."
	MsgCheckinDone     = "출석 완료"
)

// CheckInInput is the submission payload. Token is the session short code —
// the QR flow embeds it, and the short-link flow uses the typed code directly.
type CheckInInput struct {
	SessionID     string
	Token         string
	ParticipantID string
	Phone         string
}

// CheckInSessionStore is the session surface needed for token gating.
type CheckInSessionStore interface {
	GetByShortCode(ctx context.Context, shortCode string) (domainSession.Session, error)
}

// CheckInParticipantStore is the participant surface needed for verification.
type CheckInParticipantStore interface {
	GetByID(ctx context.Context, id string) (domainParticipant.Participant, error)
}

// CheckInAttendanceStore appends the check-in record.
type CheckInAttendanceStore interface {
	Save(ctx context.Context, r domainAttendance.Record) error
}

// CheckInSettingsStore reads the simple-mode flag at submission time.
type CheckInSettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// CheckInDeps holds dependencies for CheckIn.
type CheckInDeps struct {
	SessionStore     CheckInSessionStore
	ParticipantStore CheckInParticipantStore
	AttendanceStore  CheckInAttendanceStore
	SettingsStore    CheckInSettingsStore
	HashPhone        func(string) string // salted digest, same as roster hashing
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteCheckIn resolves one check-in submission. Every business failure is
// reported through the Result message — the returned error is reserved for
// infrastructure faults (store/query errors), which the handler maps to a
// generic failure so the public flow still renders a reason.
//
// PRE: Deps stores and funcs are non-nil
// POST: On success exactly one attendance record exists for
// (session, participant); repeat submissions yield MsgAlreadyChecked
func ExecuteCheckIn(ctx context.Context, input CheckInInput, deps CheckInDeps) (domainAttendance.Result, error) {
	// Token is the short code; the session it resolves to must be the one
	// the client claims to be checking into.
	sess, err := deps.SessionStore.GetByShortCode(ctx, strings.ToUpper(input.Token))
	if errors.Is(err, domainSession.ErrNotFound) {
		return domainAttendance.Result{OK: false, Message: MsgInvalidCode}, nil
	}
	if err != nil {
		return domainAttendance.Result{}, err
	}
	if !sess.IsActive() {
		return domainAttendance.Result{OK: false, Message: MsgSessionClosed}, nil
	}
	if sess.ID != input.SessionID {
		return domainAttendance.Result{OK: false, Message: MsgSessionMismatch}, nil
	}

	p, err := deps.ParticipantStore.GetByID(ctx, input.ParticipantID)
	if errors.Is(err, domainParticipant.ErrNotFound) {
		return domainAttendance.Result{OK: false, Message: MsgNoParticipant}, nil
	}
	if err != nil {
		return domainAttendance.Result{}, err
	}

	simpleMode := false
	if v, ok, err := deps.SettingsStore.Get(ctx, domainSettings.KeySimpleCheckinMode); err != nil {
		return domainAttendance.Result{}, err
	} else if ok {
		simpleMode = v == "true"
	}

	var storedPhone string
	if simpleMode {
		// Simple mode trades verification strength for friction: identity
		// proof is the name-search disambiguation alone, and only the
		// masked number is recorded.
		storedPhone = phone.Mask(p.PhoneLast4)
	} else {
		norm := phone.Normalize(input.Phone)
		if norm == "" {
			return domainAttendance.Result{OK: false, Message: MsgCheckPhone}, nil
		}
		if deps.HashPhone(norm) != p.PhoneHash {
			return domainAttendance.Result{OK: false, Message: MsgPhoneMismatch}, nil
		}
		storedPhone = norm
	}

	record := domainAttendance.Record{
		ID:            deps.GenerateID(),
		SessionID:     sess.ID,
		SessionTitle:  sess.Title,
		ParticipantID: p.ID,
		Name:          p.Name,
		Phone:         storedPhone,
		PhoneLast4:    p.PhoneLast4,
		District:      p.District,
		CheckedInAt:   deps.Now().Format(domainAttendance.TimeLayout),
	}
	if err := record.Validate(); err != nil {
		return domainAttendance.Result{}, err
	}

	if err := deps.AttendanceStore.Save(ctx, record); err != nil {
		if errors.Is(err, domainAttendance.ErrDuplicate) {
			return domainAttendance.Result{OK: false, Message: MsgAlreadyChecked}, nil
		}
		return domainAttendance.Result{}, err
	}

	slog.Info("checkin_event", "event", "participant_checked_in",
		"session_id", sess.ID, "participant_id", p.ID, "simple_mode", simpleMode)

	return domainAttendance.Result{OK: true, Message: MsgCheckinDone}, nil
}
