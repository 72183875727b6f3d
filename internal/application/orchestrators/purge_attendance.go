package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Purge outcome messages.
const (
	MsgPurgeNoCondition = "삭제 조건을 선택해주세요."
	MsgPurgeFailed      = "삭제 중 오류가 발생했습니다."
)

// PurgeAttendanceInput selects records to delete. Exactly one of SessionID or
// the date pair should be set; dates are inclusive YYYY-MM-DD.
type PurgeAttendanceInput struct {
	SessionID string
	StartDate string
	EndDate   string
}

// PurgeAttendanceStore is the attendance surface needed by the purge.
type PurgeAttendanceStore interface {
	DeleteBySessionID(ctx context.Context, sessionID string) (int, error)
	DeleteByDateRange(ctx context.Context, start, end string) (int, error)
}

// PurgeAttendanceDeps holds dependencies for PurgeAttendance.
type PurgeAttendanceDeps struct {
	AttendanceStore PurgeAttendanceStore
}

// PurgeAttendanceResult reports the purge outcome. Success is false both for
// a missing condition and for a store failure, with the reason in Message.
type PurgeAttendanceResult struct {
	Success bool   `json:"success"`
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// ExecutePurgeAttendance deletes attendance records by session or by an
// inclusive date range. The store works on half-open timestamp intervals, so
// the inclusive end date is converted to the following day before the call.
func ExecutePurgeAttendance(ctx context.Context, input PurgeAttendanceInput, deps PurgeAttendanceDeps) PurgeAttendanceResult {
	var (
		deleted int
		err     error
	)
	switch {
	case input.SessionID != "":
		deleted, err = deps.AttendanceStore.DeleteBySessionID(ctx, input.SessionID)
	case input.StartDate != "" && input.EndDate != "":
		end, perr := nextDay(input.EndDate)
		if perr != nil {
			return PurgeAttendanceResult{Success: false, Message: MsgPurgeFailed}
		}
		deleted, err = deps.AttendanceStore.DeleteByDateRange(ctx, input.StartDate, end)
	default:
		return PurgeAttendanceResult{Success: false, Message: MsgPurgeNoCondition}
	}
	if err != nil {
		slog.Error("attendance_event", "event", "purge_failed", "error", err)
		return PurgeAttendanceResult{Success: false, Message: MsgPurgeFailed}
	}

	slog.Info("attendance_event", "event", "attendance_purged",
		"session_id", input.SessionID, "start", input.StartDate,
		"end", input.EndDate, "deleted", deleted)

	return PurgeAttendanceResult{
		Success: true,
		Deleted: deleted,
		Message: fmt.Sprintf("%d건의 출석 기록을 삭제했습니다.", deleted),
	}
}

// nextDay returns the day after an inclusive YYYY-MM-DD end date, making the
// half-open store interval cover the full end day.
func nextDay(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, 1).Format("2006-01-02"), nil
}
