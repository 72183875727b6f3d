package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"qrcheckin/internal/application/orchestrators"
	domainAttendance "qrcheckin/internal/domain/attendance"
	domainParticipant "qrcheckin/internal/domain/participant"
	domainSession "qrcheckin/internal/domain/session"
	"qrcheckin/internal/domain/phone"
)

// handleSearchParticipants handles GET /api/participants/search
func handleSearchParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	input := orchestrators.SearchParticipantsInput{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	}
	result, err := orchestrators.ExecuteSearchParticipants(ctx, input, orchestrators.SearchParticipantsDeps{
		ParticipantStore: stores.ParticipantStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": result.Items})
}

// checkInRequest is the submission body. Name is the legacy variant used by
// old clients that select by exact name instead of participant ID.
type checkInRequest struct {
	SessionID     string `json:"sessionId"`
	Token         string `json:"token"`
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
}

// handleCheckIn handles POST /api/checkin. Business failures answer 200 with
// {ok:false, message}; only transport-level problems get an error status.
func handleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkInRequest
	if err := strictDecode(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	if req.ParticipantID == "" && req.Name != "" {
		// Legacy clients identify by name and phone.
		norm := phone.Normalize(req.Phone)
		if norm == "" {
			writeJSON(w, http.StatusOK, domainAttendance.Result{OK: false, Message: orchestrators.MsgCheckPhone})
			return
		}
		p, err := stores.ParticipantStore.GetByNameAndPhoneHash(ctx, strings.TrimSpace(req.Name), hasher.Sum(norm))
		if errors.Is(err, domainParticipant.ErrNotFound) {
			writeJSON(w, http.StatusOK, domainAttendance.Result{OK: false, Message: orchestrators.MsgNoParticipant})
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		req.ParticipantID = p.ID
	}

	input := orchestrators.CheckInInput{
		SessionID:     req.SessionID,
		Token:         req.Token,
		ParticipantID: req.ParticipantID,
		Phone:         req.Phone,
	}
	result, err := orchestrators.ExecuteCheckIn(ctx, input, orchestrators.CheckInDeps{
		SessionStore:     stores.SessionStore,
		ParticipantStore: stores.ParticipantStore,
		AttendanceStore:  stores.AttendanceStore,
		SettingsStore:    stores.SettingsStore,
		HashPhone:        hasher.Sum,
		GenerateID:       generateID,
		Now:              time.Now,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSessionByCode handles GET /api/sessions/code/{code}
func handleSessionByCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := strings.ToUpper(strings.TrimSpace(r.PathValue("code")))
	sess, err := stores.SessionStore.GetByShortCode(ctx, code)
	if errors.Is(err, domainSession.ErrNotFound) {
		jsonMessage(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Public())
}
