package attendance

import (
	"errors"
	"time"
)

// TimeLayout is the storage format for check-in timestamps.
const TimeLayout = "2006-01-02 15:04"

// Domain errors
var (
	ErrDuplicate = errors.New("이미 출석 처리되었습니다.")
)

// Record is one successful check-in. Records are append-only: once written
// they are never updated, only bulk-deleted by the admin purge operations.
// UNIQUE(session_id, participant_id) in storage keeps one check-in per
// participant per session.
type Record struct {
	ID            string `json:"id"`
	SessionID     string `json:"sessionId"`
	SessionTitle  string `json:"sessionTitle"`
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	PhoneLast4    string `json:"phoneLast4"`
	District      string `json:"district"`
	CheckedInAt   string `json:"checkedInAt"` // TimeLayout
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: SessionID and ParticipantID must not be empty, CheckedInAt must parse
func (r *Record) Validate() error {
	if r.SessionID == "" {
		return errors.New("attendance must reference a session")
	}
	if r.ParticipantID == "" {
		return errors.New("attendance must reference a participant")
	}
	if r.Name == "" {
		return errors.New("attendance must carry the participant name")
	}
	if _, err := time.Parse(TimeLayout, r.CheckedInAt); err != nil {
		return errors.New("checked-in time must be formatted as 2006-01-02 15:04")
	}
	return nil
}

// Result is the uniform outcome of a check-in submission. Every failure path
// carries a human-readable message; the public flow never throws.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
