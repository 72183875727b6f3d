package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"qrcheckin/internal/adapters/email"
	domainAttendance "qrcheckin/internal/domain/attendance"
)

// CleanupAttendanceStore is the attendance surface needed by retention cleanup.
type CleanupAttendanceStore interface {
	DeleteOlderThan(ctx context.Context, cutoff string) (int, error)
}

// CleanupAttendanceDeps holds dependencies for the retention cleanup.
// EmailSender may be a noop; AdminEmail empty skips the summary mail.
type CleanupAttendanceDeps struct {
	AttendanceStore CleanupAttendanceStore
	EmailSender     email.Sender
	RetentionDays   int
	AdminEmail      string
	Now             func() time.Time
}

// CleanupAttendanceResult reports one retention run.
type CleanupAttendanceResult struct {
	Enabled bool   `json:"enabled"`
	Deleted int    `json:"deleted"`
	Cutoff  string `json:"cutoff,omitempty"`
}

// ExecuteCleanupAttendance deletes attendance records older than the
// retention window and mails a summary to the admin address. A
// non-positive RetentionDays disables the run entirely. Email failure is
// logged but never fails the cleanup; the records are already gone.
func ExecuteCleanupAttendance(ctx context.Context, deps CleanupAttendanceDeps) (CleanupAttendanceResult, error) {
	if deps.RetentionDays <= 0 {
		return CleanupAttendanceResult{Enabled: false}, nil
	}

	cutoff := deps.Now().AddDate(0, 0, -deps.RetentionDays).Format(domainAttendance.TimeLayout)
	deleted, err := deps.AttendanceStore.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return CleanupAttendanceResult{}, err
	}

	slog.Info("attendance_event", "event", "retention_cleanup",
		"cutoff", cutoff, "deleted", deleted)

	if deleted > 0 && deps.AdminEmail != "" && deps.EmailSender != nil {
		req := email.SendRequest{
			To:      []string{deps.AdminEmail},
			Subject: "출석 기록 보존 기간 정리 결과",
			HTML: fmt.Sprintf("<p>%s 이전의 출석 기록 %d건을 삭제했습니다.</p>",
				cutoff, deleted),
		}
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			slog.Error("attendance_event", "event", "cleanup_summary_email_failed", "error", err)
		}
	}

	return CleanupAttendanceResult{Enabled: true, Deleted: deleted, Cutoff: cutoff}, nil
}
