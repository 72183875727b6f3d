package adminauth

import (
	"testing"
	"time"
)

// TestGrant_Valid verifies validity is a pure function of issue time and TTL.
func TestGrant_Valid(t *testing.T) {
	issued := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	g := NewGrant(issued)

	if !g.Valid(issued) {
		t.Error("grant must be valid at issue time")
	}
	if !g.Valid(issued.Add(59 * time.Minute)) {
		t.Error("grant must be valid within the hour")
	}
	if g.Valid(issued.Add(time.Hour)) {
		t.Error("grant must expire exactly at IssuedAt+TTL")
	}
	if (Grant{}).Valid(issued) {
		t.Error("zero grant must never be valid")
	}
}

// TestVerifyPin covers blank, wrong and matching PINs.
func TestVerifyPin(t *testing.T) {
	hash, err := HashPin("1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if err := VerifyPin("", hash); err != ErrBlankPin {
		t.Errorf("blank pin err=%v want ErrBlankPin", err)
	}
	if err := VerifyPin("9999", hash); err != ErrBadPin {
		t.Errorf("wrong pin err=%v want ErrBadPin", err)
	}
	if err := VerifyPin("1234", hash); err != nil {
		t.Errorf("correct pin err=%v want nil", err)
	}
}
