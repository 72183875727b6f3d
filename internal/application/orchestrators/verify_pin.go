package orchestrators

import (
	"context"
	"log/slog"
	"time"

	domainAdminAuth "qrcheckin/internal/domain/adminauth"
)

// VerifyPinInput carries the submitted admin PIN.
type VerifyPinInput struct {
	Pin string
}

// GrantIssuer stores a fresh admin grant under an opaque token.
type GrantIssuer interface {
	Issue(ctx context.Context, grant domainAdminAuth.Grant) (token string, err error)
}

// VerifyPinDeps holds dependencies for VerifyPin.
type VerifyPinDeps struct {
	PinHash string // bcrypt hash of the configured admin PIN
	Grants  GrantIssuer
	Now     func() time.Time
}

// VerifyPinResult carries the issued grant token and its expiry.
type VerifyPinResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// ExecuteVerifyPin checks the admin PIN and issues a one-hour grant.
// Blank PIN and mismatch surface the adminauth domain errors so the handler
// can distinguish 400 from 401.
func ExecuteVerifyPin(ctx context.Context, input VerifyPinInput, deps VerifyPinDeps) (VerifyPinResult, error) {
	if err := domainAdminAuth.VerifyPin(input.Pin, deps.PinHash); err != nil {
		slog.Warn("admin_event", "event", "pin_rejected")
		return VerifyPinResult{}, err
	}

	grant := domainAdminAuth.NewGrant(deps.Now())
	token, err := deps.Grants.Issue(ctx, grant)
	if err != nil {
		return VerifyPinResult{}, err
	}

	slog.Info("admin_event", "event", "admin_grant_issued",
		"expires_at", grant.ExpiresAt())

	return VerifyPinResult{
		Token:     token,
		ExpiresAt: grant.ExpiresAt().UTC().Format(time.RFC3339),
	}, nil
}
