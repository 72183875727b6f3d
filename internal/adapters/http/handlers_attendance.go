package web

import (
	"context"
	"net/http"
	"time"

	"qrcheckin/internal/application/listutil"
	"qrcheckin/internal/application/orchestrators"
	domainAttendance "qrcheckin/internal/domain/attendance"
)

// attendedIDsFromLedger builds the attended-participant set for the district
// report, over one session or the whole ledger.
func attendedIDsFromLedger(ctx context.Context, sessionID string) (map[string]bool, error) {
	var (
		records []domainAttendance.Record
		err     error
	)
	if sessionID != "" {
		records, err = stores.AttendanceStore.ListBySessionID(ctx, sessionID)
	} else {
		records, err = stores.AttendanceStore.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(records))
	for _, rec := range records {
		ids[rec.ParticipantID] = true
	}
	return ids, nil
}

// handleListAttendances handles GET /api/admin/attendances
func handleListAttendances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		records []domainAttendance.Record
		err     error
	)
	if sessionID := r.URL.Query().Get("sessionId"); sessionID != "" {
		records, err = stores.AttendanceStore.ListBySessionID(ctx, sessionID)
	} else {
		records, err = stores.AttendanceStore.List(ctx)
	}
	if err != nil {
		internalError(w, err)
		return
	}

	params := listutil.ParsePageParams(r.URL.Query())
	page := listutil.NewPageInfo(params.Page, params.PerPage, len(records))
	start, end := page.Slice()
	writeJSON(w, http.StatusOK, map[string]any{
		"items": records[start:end],
		"page":  page,
	})
}

// handlePurgeAttendances handles DELETE /api/admin/attendances
func handlePurgeAttendances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	result := orchestrators.ExecutePurgeAttendance(ctx, orchestrators.PurgeAttendanceInput{
		SessionID: q.Get("sessionId"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}, orchestrators.PurgeAttendanceDeps{
		AttendanceStore: stores.AttendanceStore,
	})
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// handleCountAttendances handles GET /api/admin/attendances/count
func handleCountAttendances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		jsonMessage(w, http.StatusBadRequest, "sessionId가 필요합니다.")
		return
	}
	count, err := stores.AttendanceStore.CountBySessionID(ctx, sessionID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// handleCleanupStatus handles GET /api/admin/attendances/cleanup/status
func handleCleanupStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":       cfg.RetentionDays > 0,
		"retentionDays": cfg.RetentionDays,
	})
}

// handleCleanupRun handles POST /api/admin/attendances/cleanup/run
func handleCleanupRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := orchestrators.ExecuteCleanupAttendance(ctx, orchestrators.CleanupAttendanceDeps{
		AttendanceStore: stores.AttendanceStore,
		EmailSender:     emailSender,
		RetentionDays:   cfg.RetentionDays,
		AdminEmail:      cfg.AdminEmail,
		Now:             time.Now,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
