package participant

import (
	"errors"
	"strings"

	"qrcheckin/internal/domain/phone"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrBlankName  = errors.New("이름을 입력해주세요.")
	ErrBlankPhone = errors.New("올바른 전화번호를 입력해주세요.")
	ErrDuplicate  = errors.New("이미 등록된 신자입니다.")
	ErrNotFound   = errors.New("신자를 찾을 수 없습니다.")
)

// Participant is one roster entry. The full phone number is never stored:
// PhoneHash carries the salted digest used for standard-mode verification and
// PhoneLast4 the masked fragment shown publicly. Both are derived from the
// normalized phone by New and must never be set independently.
type Participant struct {
	ID            string
	Name          string
	PhoneHash     string
	PhoneLast4    string
	BaptismalName string
	District      string
	CreatedAt     string
}

// HashFunc computes the salted phone digest. Injected so the domain package
// stays free of the hashing configuration.
type HashFunc func(string) string

// New builds a Participant from raw admin input, deriving PhoneHash and
// PhoneLast4 from the normalized phone number.
// PRE: hash is non-nil
// POST: Returned participant passes Validate; last4 matches the hash input
func New(id, name, rawPhone, baptismalName, district string, hash HashFunc) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, ErrBlankName
	}
	norm := phone.Normalize(rawPhone)
	if norm == "" {
		return Participant{}, ErrBlankPhone
	}
	return Participant{
		ID:            id,
		Name:          name,
		PhoneHash:     hash(norm),
		PhoneLast4:    phone.Last4(norm),
		BaptismalName: strings.TrimSpace(baptismalName),
		District:      strings.TrimSpace(district),
	}, nil
}

// Validate checks if the Participant has valid data.
// PRE: Participant struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty, PhoneHash and PhoneLast4 must be set
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrBlankName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("participant name cannot exceed 100 characters")
	}
	if p.PhoneHash == "" || p.PhoneLast4 == "" {
		return ErrBlankPhone
	}
	return nil
}

// SearchItem is the public projection of a participant for the check-in
// search. It never carries the full phone number or the hash.
type SearchItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PhoneLast4    string `json:"phoneLast4"`
	BaptismalName string `json:"baptismalName"`
	District      string `json:"district"`
}

// PublicItem returns the masked projection safe for unauthenticated callers.
// INVARIANT: The result exposes PhoneLast4 only, never PhoneHash
func (p *Participant) PublicItem() SearchItem {
	return SearchItem{
		ID:            p.ID,
		Name:          p.Name,
		PhoneLast4:    p.PhoneLast4,
		BaptismalName: p.BaptismalName,
		District:      p.District,
	}
}
