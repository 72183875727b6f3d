package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "qrcheckin/internal/adapters/email"
	web "qrcheckin/internal/adapters/http"
	"qrcheckin/internal/adapters/storage"
	attendanceStore "qrcheckin/internal/adapters/storage/attendance"
	participantStore "qrcheckin/internal/adapters/storage/participant"
	sessionStore "qrcheckin/internal/adapters/storage/session"
	settingsStore "qrcheckin/internal/adapters/storage/settings"
	"qrcheckin/internal/application/orchestrators"
	"qrcheckin/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// WAL mode, foreign keys, and a busy timeout for concurrent check-ins
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	timedDB := storage.NewTimedDB(db, cfg.SlowQueryMs)

	stores := &web.Stores{
		ParticipantStore: participantStore.NewSQLiteStore(timedDB),
		SessionStore:     sessionStore.NewSQLiteStore(timedDB),
		AttendanceStore:  attendanceStore.NewSQLiteStore(timedDB),
		SettingsStore:    settingsStore.NewSQLiteStore(timedDB),
	}

	// Configure email sender
	var sender emailPkg.Sender = emailPkg.NewNoopSender()
	if cfg.ResendAPIKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		log.Println("Email sender configured (noop — set RESEND_API_KEY for real delivery)")
	}
	web.SetEmailSender(sender)

	// Nightly retention cleanup
	if cfg.RetentionDays > 0 {
		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				_, err := orchestrators.ExecuteCleanupAttendance(context.Background(), orchestrators.CleanupAttendanceDeps{
					AttendanceStore: stores.AttendanceStore,
					EmailSender:     sender,
					RetentionDays:   cfg.RetentionDays,
					AdminEmail:      cfg.AdminEmail,
					Now:             time.Now,
				})
				if err != nil {
					slog.Error("retention_cleanup_failed", "error", err)
				}
			}
		}()
		log.Printf("Attendance retention cleanup enabled (%d days)", cfg.RetentionDays)
	}

	mux := web.NewMux(cfg, stores)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("qrcheckin %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
