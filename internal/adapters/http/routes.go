package web

import "net/http"

// registerRoutes wires every API endpoint. The admin surface lives under
// /api/admin and is protected by the grant gate in the middleware chain.
func registerRoutes(mux *http.ServeMux) {
	// Public check-in surface
	mux.HandleFunc("GET /api/participants/search", handleSearchParticipants)
	mux.HandleFunc("POST /api/checkin", handleCheckIn)
	mux.HandleFunc("GET /api/sessions/code/{code}", handleSessionByCode)
	mux.HandleFunc("GET /api/settings", handlePublicSettings)
	mux.HandleFunc("GET /api/settings/church-name", handleChurchName)
	mux.HandleFunc("GET /api/settings/simple-checkin-mode", handleSimpleCheckinMode)
	mux.HandleFunc("GET /api/settings/welcome", handleWelcomeMessage)

	// Admin auth
	mux.HandleFunc("POST /api/admin/auth/verify", handleVerifyPin)
	mux.HandleFunc("POST /api/admin/auth/logout", handleLogout)

	// Admin sessions
	mux.HandleFunc("GET /api/admin/sessions", handleListSessions)
	mux.HandleFunc("POST /api/admin/sessions", handleCreateSession)
	mux.HandleFunc("GET /api/admin/sessions/{id}", handleGetSession)
	mux.HandleFunc("DELETE /api/admin/sessions/{id}", handleDeleteSession)
	mux.HandleFunc("POST /api/admin/sessions/{id}/close", handleCloseSession)
	mux.HandleFunc("GET /api/admin/sessions/{id}/qr", handleSessionQR)

	// Admin participants
	mux.HandleFunc("GET /api/admin/participants", handleListParticipants)
	mux.HandleFunc("POST /api/admin/participants", handleAddParticipant)
	mux.HandleFunc("DELETE /api/admin/participants/{id}", handleDeleteParticipant)
	mux.HandleFunc("POST /api/admin/participants/import", handleImportParticipants)
	mux.HandleFunc("GET /api/admin/participants/count", handleCountParticipants)
	mux.HandleFunc("GET /api/admin/participants/stats/by-district", handleDistrictReport)

	// Admin attendance ledger
	mux.HandleFunc("GET /api/admin/attendances", handleListAttendances)
	mux.HandleFunc("DELETE /api/admin/attendances", handlePurgeAttendances)
	mux.HandleFunc("GET /api/admin/attendances/count", handleCountAttendances)
	mux.HandleFunc("GET /api/admin/attendances/cleanup/status", handleCleanupStatus)
	mux.HandleFunc("POST /api/admin/attendances/cleanup/run", handleCleanupRun)

	// Admin settings
	mux.HandleFunc("GET /api/admin/settings", handleAdminSettings)
	mux.HandleFunc("PUT /api/admin/settings/{key}", handlePutSetting)
	mux.HandleFunc("POST /api/admin/upload/logo", handleUploadLogo)
}
