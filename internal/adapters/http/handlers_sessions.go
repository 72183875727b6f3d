package web

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"qrcheckin/internal/application/orchestrators"
	"qrcheckin/internal/application/projections"
	domainSession "qrcheckin/internal/domain/session"
)

// handleListSessions handles GET /api/admin/sessions
func handleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := stores.SessionStore.List(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	items := make([]projections.SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		count, err := stores.AttendanceStore.CountBySessionID(ctx, s.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		items = append(items, projections.SessionDetail{
			ID:          s.ID,
			Title:       s.Title,
			SessionDate: s.SessionDate,
			StartsAt:    s.StartsAt,
			EndsAt:      s.EndsAt,
			Status:      s.Status,
			ShortCode:   s.ShortCode,
			CheckinURL:  domainSession.CheckinURL(cfg.CheckinBaseURL, s.ShortCode),
			Attended:    count,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleCreateSession handles POST /api/admin/sessions
func handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Title       string `json:"title"`
		SessionDate string `json:"sessionDate"`
	}
	if err := strictDecode(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	input := orchestrators.CreateSessionInput{
		Title:       req.Title,
		SessionDate: req.SessionDate,
		StartsAt:    req.SessionDate + " 00:00:00",
		EndsAt:      req.SessionDate + " 23:59:59",
	}
	sess, err := orchestrators.ExecuteCreateSession(ctx, input, orchestrators.CreateSessionDeps{
		SessionStore: stores.SessionStore,
		HashToken:    hasher.Sum,
		Now:          time.Now,
	})
	if errors.Is(err, domainSession.ErrDuplicateID) {
		jsonMessage(w, http.StatusConflict, "이미 존재하는 세션입니다.")
		return
	}
	if errors.Is(err, domainSession.ErrBlankTitle) || errors.Is(err, domainSession.ErrBadDate) {
		jsonMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, projections.SessionDetail{
		ID:          sess.ID,
		Title:       sess.Title,
		SessionDate: sess.SessionDate,
		StartsAt:    sess.StartsAt,
		EndsAt:      sess.EndsAt,
		Status:      sess.Status,
		ShortCode:   sess.ShortCode,
		CheckinURL:  domainSession.CheckinURL(cfg.CheckinBaseURL, sess.ShortCode),
	})
}

// handleGetSession handles GET /api/admin/sessions/{id}
func handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := projections.QuerySessionDetail(ctx, projections.SessionDetailQuery{
		SessionID: r.PathValue("id"),
		BaseURL:   cfg.CheckinBaseURL,
	}, projections.SessionDetailDeps{
		SessionStore:    stores.SessionStore,
		AttendanceStore: stores.AttendanceStore,
	})
	if errors.Is(err, domainSession.ErrNotFound) {
		jsonMessage(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleDeleteSession handles DELETE /api/admin/sessions/{id}
func handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := stores.SessionStore.Delete(ctx, r.PathValue("id"))
	if errors.Is(err, domainSession.ErrNotFound) {
		jsonMessage(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCloseSession handles POST /api/admin/sessions/{id}/close
func handleCloseSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	sess, err := stores.SessionStore.GetByID(ctx, id)
	if errors.Is(err, domainSession.ErrNotFound) {
		jsonMessage(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	// Closing twice is a no-op for the caller.
	if err := sess.Close(); err != nil && !errors.Is(err, domainSession.ErrAlreadyClosed) {
		internalError(w, err)
		return
	}
	if err := stores.SessionStore.UpdateStatus(ctx, id, domainSession.StatusClosed); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Public())
}

// handleSessionQR handles GET /api/admin/sessions/{id}/qr. QR rendering is
// delegated to an external image service; this returns the data-bearing URL.
func handleSessionQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := stores.SessionStore.GetByID(ctx, r.PathValue("id"))
	if errors.Is(err, domainSession.ErrNotFound) {
		jsonMessage(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	checkinURL := domainSession.CheckinURL(cfg.CheckinBaseURL, sess.ShortCode)
	writeJSON(w, http.StatusOK, map[string]string{
		"checkinUrl": checkinURL,
		"qrImageUrl": "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + url.QueryEscape(checkinURL),
		"shortCode":  sess.ShortCode,
	})
}
