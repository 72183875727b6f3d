package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	domainAdminAuth "qrcheckin/internal/domain/adminauth"
)

// AdminTokenHeader carries the grant token on admin API requests.
const AdminTokenHeader = "X-Admin-Token"

// GrantStore is an in-memory store of issued admin grants keyed by opaque
// token. Grants are small and short-lived, so expired entries are reaped
// lazily on lookup and by a periodic sweep.
type GrantStore struct {
	mu     sync.RWMutex
	grants map[string]domainAdminAuth.Grant
	now    func() time.Time
}

// NewGrantStore creates a grant store and starts the expiry sweep.
func NewGrantStore() *GrantStore {
	gs := &GrantStore{
		grants: make(map[string]domainAdminAuth.Grant),
		now:    time.Now,
	}
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			gs.sweep()
		}
	}()
	return gs
}

func (gs *GrantStore) sweep() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	now := gs.now()
	for token, g := range gs.grants {
		if !g.Valid(now) {
			delete(gs.grants, token)
		}
	}
}

// Issue stores a grant under a fresh random token.
// POST: Token is 64 hex characters; grant retrievable until expiry
func (gs *GrantStore) Issue(_ context.Context, grant domainAdminAuth.Grant) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.grants[token] = grant
	return token, nil
}

// Valid reports whether the token maps to an unexpired grant.
func (gs *GrantStore) Valid(token string) bool {
	if token == "" {
		return false
	}
	gs.mu.RLock()
	g, ok := gs.grants[token]
	gs.mu.RUnlock()
	if !ok {
		return false
	}
	if !g.Valid(gs.now()) {
		gs.mu.Lock()
		delete(gs.grants, token)
		gs.mu.Unlock()
		return false
	}
	return true
}

// Revoke removes a grant, ending the admin session early.
func (gs *GrantStore) Revoke(token string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	delete(gs.grants, token)
}

// AdminGate protects /api/admin/ paths: requests must carry a valid grant
// token. The verify endpoint itself stays open so a grant can be obtained.
func AdminGate(grants *GrantStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/admin/") ||
				r.URL.Path == "/api/admin/auth/verify" {
				next.ServeHTTP(w, r)
				return
			}
			if !grants.Valid(r.Header.Get(AdminTokenHeader)) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"관리자 인증이 필요합니다."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// generateToken creates a 32-byte random token, hex-encoded.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
