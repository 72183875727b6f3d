package phone

import "testing"

// TestNormalize_StripsNonDigits verifies all separators and letters are removed.
func TestNormalize_StripsNonDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"010-1234-5678", "01012345678"},
		{"010 1234 5678", "01012345678"},
		{"(02) 345-6789", "023456789"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

// TestLast4 verifies short numbers are returned whole.
func TestLast4(t *testing.T) {
	if got := Last4("01012345678"); got != "5678" {
		t.Fatalf("Last4=%q want 5678", got)
	}
	if got := Last4("123"); got != "123" {
		t.Fatalf("Last4 short=%q want 123", got)
	}
	if got := Last4(""); got != "" {
		t.Fatalf("Last4 empty=%q want empty", got)
	}
}

// TestFormat verifies dash placement for 10 and 11 digit numbers.
func TestFormat(t *testing.T) {
	if got := Format("01012345678"); got != "010-1234-5678" {
		t.Fatalf("Format 11=%q", got)
	}
	if got := Format("0212345678"); got != "021-234-5678" {
		t.Fatalf("Format 10=%q", got)
	}
	if got := Format("12345"); got != "12345" {
		t.Fatalf("Format other=%q", got)
	}
}

// TestMask verifies the masked display form.
func TestMask(t *testing.T) {
	if got := Mask("5678"); got != "***-****-5678" {
		t.Fatalf("Mask=%q", got)
	}
}
