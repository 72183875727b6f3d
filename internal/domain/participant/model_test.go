package participant

import "testing"

func fakeHash(s string) string { return "h:" + s }

// TestNew_DerivesMaskedFields verifies PhoneHash and PhoneLast4 come from the
// normalized phone, never from caller-supplied values.
func TestNew_DerivesMaskedFields(t *testing.T) {
	p, err := New("p1", " 홍길동 ", "010-1234-5678", "베드로", "1구역", fakeHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "홍길동" {
		t.Errorf("name=%q want trimmed", p.Name)
	}
	if p.PhoneHash != "h:01012345678" {
		t.Errorf("phoneHash=%q want derived from normalized phone", p.PhoneHash)
	}
	if p.PhoneLast4 != "5678" {
		t.Errorf("phoneLast4=%q want 5678", p.PhoneLast4)
	}
}

// TestNew_BlankFields verifies blank name and phone are rejected.
func TestNew_BlankFields(t *testing.T) {
	if _, err := New("p1", "  ", "010-1234-5678", "", "", fakeHash); err != ErrBlankName {
		t.Fatalf("blank name err=%v want ErrBlankName", err)
	}
	if _, err := New("p1", "홍길동", "no digits", "", "", fakeHash); err != ErrBlankPhone {
		t.Fatalf("blank phone err=%v want ErrBlankPhone", err)
	}
}

// TestPublicItem_NeverExposesHash verifies the public projection carries only
// the masked fragment.
func TestPublicItem_NeverExposesHash(t *testing.T) {
	p, _ := New("p1", "홍길동", "01012345678", "베드로", "", fakeHash)
	item := p.PublicItem()
	if item.PhoneLast4 != "5678" {
		t.Errorf("phoneLast4=%q want 5678", item.PhoneLast4)
	}
	if item.District != "" || item.BaptismalName != "베드로" {
		t.Errorf("unexpected projection: %+v", item)
	}
}
