package web

import (
	"errors"
	"net/http"
	"time"

	"qrcheckin/internal/application/orchestrators"
	"qrcheckin/internal/application/projections"
	domainParticipant "qrcheckin/internal/domain/participant"
)

// rosterItem is the admin roster projection. PhoneLast4 is all the roster
// retains of the number.
type rosterItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PhoneLast4    string `json:"phoneLast4"`
	BaptismalName string `json:"baptismalName"`
	District      string `json:"district"`
	CreatedAt     string `json:"createdAt"`
}

// handleListParticipants handles GET /api/admin/participants
func handleListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roster, err := stores.ParticipantStore.List(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	items := make([]rosterItem, 0, len(roster))
	for _, p := range roster {
		items = append(items, rosterItem{
			ID:            p.ID,
			Name:          p.Name,
			PhoneLast4:    p.PhoneLast4,
			BaptismalName: p.BaptismalName,
			District:      p.District,
			CreatedAt:     p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleAddParticipant handles POST /api/admin/participants
func handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Name          string `json:"name"`
		Phone         string `json:"phone"`
		BaptismalName string `json:"baptismalName"`
		District      string `json:"district"`
	}
	if err := strictDecode(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	p, err := orchestrators.ExecuteAddParticipant(ctx, orchestrators.AddParticipantInput{
		Name:          req.Name,
		Phone:         req.Phone,
		BaptismalName: req.BaptismalName,
		District:      req.District,
	}, orchestrators.AddParticipantDeps{
		ParticipantStore: stores.ParticipantStore,
		HashPhone:        hasher.Sum,
		GenerateID:       generateID,
		Now:              time.Now,
	})
	if errors.Is(err, domainParticipant.ErrBlankName) || errors.Is(err, domainParticipant.ErrBlankPhone) {
		jsonMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, domainParticipant.ErrDuplicate) {
		jsonMessage(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rosterItem{
		ID:            p.ID,
		Name:          p.Name,
		PhoneLast4:    p.PhoneLast4,
		BaptismalName: p.BaptismalName,
		District:      p.District,
		CreatedAt:     p.CreatedAt,
	})
}

// handleDeleteParticipant handles DELETE /api/admin/participants/{id}
func handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := stores.ParticipantStore.Delete(ctx, r.PathValue("id"))
	if errors.Is(err, domainParticipant.ErrNotFound) {
		jsonMessage(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportParticipants handles POST /api/admin/participants/import.
// The body is the CSV itself; multipart uploads use the "file" part.
func handleImportParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reader := r.Body
	if mediaType := r.Header.Get("Content-Type"); len(mediaType) >= 19 && mediaType[:19] == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			jsonMessage(w, http.StatusBadRequest, "업로드 파일을 읽을 수 없습니다.")
			return
		}
		defer file.Close()
		reader = file
	}

	result, err := orchestrators.ExecuteImportParticipants(ctx, orchestrators.ImportParticipantsInput{
		Reader:     reader,
		ReplaceAll: r.URL.Query().Get("replaceAll") == "true",
	}, orchestrators.ImportParticipantsDeps{
		ParticipantStore: stores.ParticipantStore,
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

// handleCountParticipants handles GET /api/admin/participants/count
func handleCountParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := stores.ParticipantStore.Count(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// handleDistrictReport handles GET /api/admin/participants/stats/by-district
func handleDistrictReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := projections.QueryDistrictReport(ctx, projections.DistrictReportQuery{
		SessionID: r.URL.Query().Get("sessionId"),
	}, projections.DistrictReportDeps{
		ParticipantStore: stores.ParticipantStore,
		AttendedIDs:      attendedIDsFromLedger,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
