// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration. Every field has an environment
// default suitable for local development; production deployments override
// ADMIN_PIN, CSRF_KEY and PHONE_HASH_SALT at minimum.
type Config struct {
	Addr           string `env:"ADDR" envDefault:":8080"`
	Env            string `env:"APP_ENV" envDefault:"development"`
	DBPath         string `env:"DB_PATH" envDefault:"checkin.db"`
	StaticDir      string `env:"STATIC_DIR" envDefault:"static"`
	UploadsDir     string `env:"UPLOADS_DIR" envDefault:"uploads"`
	CheckinBaseURL string `env:"CHECKIN_BASE_URL" envDefault:"http://localhost:8080"`

	// AdminPin is bcrypt-hashed at startup; AdminPinHash, when set, wins and
	// keeps the plain PIN out of the environment.
	AdminPin     string `env:"ADMIN_PIN" envDefault:"0000"`
	AdminPinHash string `env:"ADMIN_PIN_HASH"`

	PhoneHashSalt string `env:"PHONE_HASH_SALT" envDefault:"dev-phone-salt"`
	CSRFKey       string `env:"CSRF_KEY" envDefault:"dev-csrf-key-32-bytes-long-xxxxx"`

	// RetentionDays <= 0 disables the nightly attendance cleanup.
	RetentionDays int    `env:"ATTENDANCE_RETENTION_DAYS" envDefault:"0"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	EmailFrom     string `env:"EMAIL_FROM" envDefault:"출석체크 <noreply@example.org>"`

	SlowQueryMs int `env:"SLOW_QUERY_MS" envDefault:"100"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Production reports whether the server runs with production hardening
// (secure cookies, strict CSRF).
func (c Config) Production() bool {
	return c.Env == "production"
}
