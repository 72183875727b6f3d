package orchestrators

import (
	"context"
	"testing"
	"time"

	"qrcheckin/internal/adapters/email"
)

type mockCleanupStore struct {
	calls  int
	cutoff string
	count  int
}

func (m *mockCleanupStore) DeleteOlderThan(_ context.Context, cutoff string) (int, error) {
	m.calls++
	m.cutoff = cutoff
	return m.count, nil
}

type recordingSender struct {
	email.NoopSender
	sent []email.SendRequest
}

func (s *recordingSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	s.sent = append(s.sent, req)
	return s.NoopSender.Send(ctx, req)
}

func TestExecuteCleanupAttendance(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC) }

	t.Run("disabled when retention is non-positive", func(t *testing.T) {
		store := &mockCleanupStore{}
		res, err := ExecuteCleanupAttendance(ctx, CleanupAttendanceDeps{
			AttendanceStore: store, RetentionDays: 0, Now: now,
		})
		if err != nil {
			t.Fatalf("ExecuteCleanupAttendance: %v", err)
		}
		if res.Enabled || store.calls != 0 {
			t.Errorf("got %+v with %d store calls", res, store.calls)
		}
	})

	t.Run("deletes with a 90 day cutoff and mails the summary", func(t *testing.T) {
		store := &mockCleanupStore{count: 12}
		sender := &recordingSender{}
		res, err := ExecuteCleanupAttendance(ctx, CleanupAttendanceDeps{
			AttendanceStore: store,
			EmailSender:     sender,
			RetentionDays:   90,
			AdminEmail:      "admin@example.org",
			Now:             now,
		})
		if err != nil {
			t.Fatalf("ExecuteCleanupAttendance: %v", err)
		}
		if store.cutoff != "2024-03-03 03:00" {
			t.Errorf("cutoff %q", store.cutoff)
		}
		if res.Deleted != 12 {
			t.Errorf("got %+v", res)
		}
		if len(sender.sent) != 1 || sender.sent[0].To[0] != "admin@example.org" {
			t.Errorf("summary mail: %+v", sender.sent)
		}
	})

	t.Run("nothing deleted sends no mail", func(t *testing.T) {
		sender := &recordingSender{}
		_, err := ExecuteCleanupAttendance(ctx, CleanupAttendanceDeps{
			AttendanceStore: &mockCleanupStore{count: 0},
			EmailSender:     sender,
			RetentionDays:   30,
			AdminEmail:      "admin@example.org",
			Now:             now,
		})
		if err != nil {
			t.Fatalf("ExecuteCleanupAttendance: %v", err)
		}
		if len(sender.sent) != 0 {
			t.Errorf("unexpected mail: %+v", sender.sent)
		}
	})
}
