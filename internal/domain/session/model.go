package session

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

// Business rule constants
const (
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"

	// ShortCodeLength is the length of the public check-in code.
	ShortCodeLength = 8

	// shortCodeChars excludes 0/O/1/I to avoid hand-typing confusion.
	shortCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Domain errors
var (
	ErrAlreadyClosed = errors.New("출석이 이미 마감되었습니다.")
	ErrNotFound      = errors.New("세션을 찾을 수 없습니다.")
	ErrDuplicateID   = errors.New("이미 존재하는 세션입니다.")
	ErrBlankTitle    = errors.New("세션 제목을 입력해주세요.")
	ErrBadDate       = errors.New("날짜를 입력해주세요.")
)

// Session is one time-boxed attendance window. TokenHash is the salted digest
// of ShortCode and is the submission capability for the admin QR flow; the
// public code lookup must never reveal it.
type Session struct {
	ID          string
	Title       string
	SessionDate string // YYYY-MM-DD
	StartsAt    string
	EndsAt      string
	TokenHash   string
	ShortCode   string
	Status      string
	CreatedAt   string
}

// Validate checks if the Session has valid data.
// PRE: Session struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Session) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrBlankTitle
	}
	if s.SessionDate == "" {
		return ErrBadDate
	}
	if s.Status != StatusActive && s.Status != StatusClosed {
		return errors.New("status must be ACTIVE or CLOSED")
	}
	if len(s.ShortCode) != ShortCodeLength {
		return errors.New("short code must be 8 characters")
	}
	return nil
}

// IsActive returns true while check-ins are accepted.
// INVARIANT: Status field is not mutated
func (s *Session) IsActive() bool {
	return s.Status == StatusActive
}

// Close transitions the session ACTIVE -> CLOSED. The transition is one-way;
// a closed session is never reopened.
// PRE: Session is ACTIVE
// POST: Status is CLOSED
func (s *Session) Close() error {
	if s.Status == StatusClosed {
		return ErrAlreadyClosed
	}
	s.Status = StatusClosed
	return nil
}

// PublicInfo is the unauthenticated projection returned for short-code
// lookups. It deliberately excludes TokenHash.
type PublicInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	SessionDate string `json:"sessionDate"`
	Status      string `json:"status"`
	ShortCode   string `json:"shortCode"`
}

// Public returns the projection safe for the short-link check-in page.
// INVARIANT: TokenHash never crosses this boundary
func (s *Session) Public() PublicInfo {
	return PublicInfo{
		ID:          s.ID,
		Title:       s.Title,
		SessionDate: s.SessionDate,
		Status:      s.Status,
		ShortCode:   s.ShortCode,
	}
}

// NewShortCode generates a random 8-character code from the confusion-free
// alphabet. Uniqueness against existing sessions is the caller's job.
func NewShortCode() (string, error) {
	var b strings.Builder
	b.Grow(ShortCodeLength)
	max := big.NewInt(int64(len(shortCodeChars)))
	for i := 0; i < ShortCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(shortCodeChars[n.Int64()])
	}
	return b.String(), nil
}

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9가-힣]`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// SlugID builds the URL-safe session identifier "<date>-<slug(title)>".
// PRE: title and date are non-blank
// POST: Result contains only lowercase letters, digits, Hangul and dashes
func SlugID(title, date string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return date + "-" + slug
}

// CheckinURL builds the short link encoded into the QR image.
// The QR image itself is rendered by an external service from this URL.
func CheckinURL(baseURL, shortCode string) string {
	return strings.TrimRight(baseURL, "/") + "/c/" + shortCode
}
