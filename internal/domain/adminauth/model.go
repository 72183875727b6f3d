package adminauth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// GrantTTL is the fixed validity window for an admin grant.
const GrantTTL = time.Hour

// Domain errors
var (
	ErrBlankPin = errors.New("PIN을 입력해주세요")
	ErrBadPin   = errors.New("비밀번호가 일치하지 않습니다")
)

// Grant is an issued admin authorization. Validity is a pure function of the
// issue time and TTL; no ambient clock reads.
type Grant struct {
	IssuedAt time.Time
	TTL      time.Duration
}

// NewGrant issues a grant starting at the given instant.
// POST: Returned grant is valid for GrantTTL from issuedAt
func NewGrant(issuedAt time.Time) Grant {
	return Grant{IssuedAt: issuedAt, TTL: GrantTTL}
}

// Valid reports whether the grant is still live at the given instant.
// INVARIANT: Grant fields are not mutated
func (g Grant) Valid(now time.Time) bool {
	if g.IssuedAt.IsZero() {
		return false
	}
	return now.Before(g.IssuedAt.Add(g.TTL))
}

// ExpiresAt returns the instant the grant stops being valid.
func (g Grant) ExpiresAt() time.Time {
	return g.IssuedAt.Add(g.TTL)
}

// VerifyPin compares a submitted PIN against the stored bcrypt hash.
// PRE: pinHash is a bcrypt hash
// POST: nil on match, ErrBlankPin/ErrBadPin otherwise
func VerifyPin(pin, pinHash string) error {
	if strings.TrimSpace(pin) == "" {
		return ErrBlankPin
	}
	if bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) != nil {
		return ErrBadPin
	}
	return nil
}

// HashPin bcrypt-hashes a PIN for storage or config seeding.
func HashPin(pin string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
