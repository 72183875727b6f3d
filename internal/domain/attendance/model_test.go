package attendance

import "testing"

// TestValidate covers required fields and the timestamp format.
func TestValidate(t *testing.T) {
	valid := Record{
		ID:            "a1",
		SessionID:     "2024-03-10-주일-미사",
		SessionTitle:  "주일 미사",
		ParticipantID: "p1",
		Name:          "홍길동",
		Phone:         "01012345678",
		PhoneLast4:    "5678",
		CheckedInAt:   "2024-03-10 09:30",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Record)
	}{
		{"missing session", func(r *Record) { r.SessionID = "" }},
		{"missing participant", func(r *Record) { r.ParticipantID = "" }},
		{"missing name", func(r *Record) { r.Name = "" }},
		{"bad timestamp", func(r *Record) { r.CheckedInAt = "2024/03/10" }},
	}
	for _, c := range cases {
		r := valid
		c.mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
