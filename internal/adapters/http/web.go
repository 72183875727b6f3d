package web

import (
	"crypto/rand"
	"log"
	"net/http"
	"time"

	"qrcheckin/internal/adapters/email"
	"qrcheckin/internal/adapters/http/middleware"
	attendanceStore "qrcheckin/internal/adapters/storage/attendance"
	participantStore "qrcheckin/internal/adapters/storage/participant"
	sessionStore "qrcheckin/internal/adapters/storage/session"
	settingsStore "qrcheckin/internal/adapters/storage/settings"
	"qrcheckin/internal/config"
	"qrcheckin/internal/domain/adminauth"
	"qrcheckin/internal/hashing"
)

// Stores holds all storage dependencies.
type Stores struct {
	ParticipantStore participantStore.Store
	SessionStore     sessionStore.Store
	AttendanceStore  attendanceStore.Store
	SettingsStore    settingsStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global grant store instance (set by NewMux)
var grants *middleware.GrantStore

// Global phone/token hasher (set by NewMux)
var hasher *hashing.Hasher

// adminPinHash is the bcrypt hash the verify endpoint checks against
// (set by NewMux).
var adminPinHash string

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender = email.NewNoopSender()

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// cfg is the active server configuration (set by NewMux).
var cfg config.Config

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// loadCSRFKey returns the CSRF secret from configuration. In production the
// key MUST be set; in development a random per-startup key is tolerated.
func loadCSRFKey(c config.Config) []byte {
	if c.CSRFKey != "" && c.CSRFKey != "dev-csrf-key-32-bytes-long-xxxxx" {
		key := []byte(c.CSRFKey)
		if len(key) != 32 {
			log.Fatal("CSRF_KEY must be exactly 32 bytes")
		}
		return key
	}
	if c.Production() {
		log.Fatal("CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(c config.Config, s *Stores) http.Handler {
	cfg = c
	stores = s
	hasher = hashing.New(c.PhoneHashSalt)
	grants = middleware.NewGrantStore()

	adminPinHash = c.AdminPinHash
	if adminPinHash == "" {
		h, err := adminauth.HashPin(c.AdminPin)
		if err != nil {
			log.Fatalf("hash admin pin: %v", err)
		}
		adminPinHash = h
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(c.StaticDir)))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(c.UploadsDir))))
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Logging -> RateLimit -> AdminGate -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(loadCSRFKey(c)),
		middleware.AdminGate(grants),
		middleware.RateLimit(limiter),
		middleware.Logging,
	)
}
