package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qrcheckin/internal/adapters/http/middleware"
	"qrcheckin/internal/application/orchestrators"
	domainAdminAuth "qrcheckin/internal/domain/adminauth"
	domainSettings "qrcheckin/internal/domain/settings"
)

// handlePublicSettings handles GET /api/settings
func handlePublicSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := stores.SettingsStore.GetAll(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"churchName":        all.ChurchName(),
		"logoUrl":           all.LogoURL(),
		"simpleCheckinMode": all.SimpleCheckinMode(),
	})
}

// handleChurchName handles GET /api/settings/church-name
func handleChurchName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	value, found, err := stores.SettingsStore.Get(ctx, domainSettings.KeyChurchName)
	if err != nil {
		internalError(w, err)
		return
	}
	if !found || value == "" {
		value = domainSettings.DefaultChurchName
	}
	writeJSON(w, http.StatusOK, map[string]string{"churchName": value})
}

// handleSimpleCheckinMode handles GET /api/settings/simple-checkin-mode
func handleSimpleCheckinMode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	value, _, err := stores.SettingsStore.Get(ctx, domainSettings.KeySimpleCheckinMode)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"simpleCheckinMode": value == "true"})
}

// handleWelcomeMessage handles GET /api/settings/welcome. The admin-authored
// markdown is rendered server-side; raw HTML in the source is escaped.
func handleWelcomeMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	value, _, err := stores.SettingsStore.Get(ctx, domainSettings.KeyWelcomeMessage)
	if err != nil {
		internalError(w, err)
		return
	}
	var html bytes.Buffer
	if value != "" {
		if err := mdRenderer.Convert([]byte(value), &html); err != nil {
			internalError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"markdown": value,
		"html":     html.String(),
	})
}

// handleVerifyPin handles POST /api/admin/auth/verify
func handleVerifyPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Pin string `json:"pin"`
	}
	if err := strictDecode(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	result, err := orchestrators.ExecuteVerifyPin(ctx, orchestrators.VerifyPinInput{Pin: req.Pin}, orchestrators.VerifyPinDeps{
		PinHash: adminPinHash,
		Grants:  grants,
		Now:     time.Now,
	})
	if errors.Is(err, domainAdminAuth.ErrBlankPin) {
		jsonMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, domainAdminAuth.ErrBadPin) {
		jsonMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleLogout handles POST /api/admin/auth/logout. The grant carried on the
// request is revoked; further admin calls with it are gated again.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	grants.Revoke(r.Header.Get(middleware.AdminTokenHeader))
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminSettings handles GET /api/admin/settings
func handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := stores.SettingsStore.GetAll(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string(all))
}

// handlePutSetting handles PUT /api/admin/settings/{key}
func handlePutSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.PathValue("key")
	if !domainSettings.AllowedKey(key) {
		jsonMessage(w, http.StatusBadRequest, "허용되지 않은 설정 키입니다.")
		return
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := strictDecode(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}
	if err := stores.SettingsStore.Set(ctx, key, req.Value); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}

// handleUploadLogo handles POST /api/admin/upload/logo. The upload is sniffed
// for an image content type before being stored under a random name.
func handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonMessage(w, http.StatusBadRequest, "업로드 파일을 읽을 수 없습니다.")
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		jsonMessage(w, http.StatusBadRequest, "업로드 파일을 읽을 수 없습니다.")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		jsonMessage(w, http.StatusBadRequest, "이미지 파일만 업로드할 수 있습니다.")
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}
	name := generateID() + ext
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		internalError(w, err)
		return
	}
	dst, err := os.Create(filepath.Join(cfg.UploadsDir, name))
	if err != nil {
		internalError(w, err)
		return
	}
	defer dst.Close()
	if _, err := dst.Write(head); err != nil {
		internalError(w, err)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		internalError(w, err)
		return
	}

	logoURL := "/uploads/" + name
	if err := stores.SettingsStore.Set(ctx, domainSettings.KeyLogoURL, logoURL); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": logoURL})
}
