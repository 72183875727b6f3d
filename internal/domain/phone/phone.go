package phone

import "strings"

// Normalize strips every non-digit character from a phone number.
// PRE: none
// POST: Returns digits only; empty string for nil-ish input
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Last4 returns the last four digits of a normalized phone number.
// Numbers with four or fewer digits are returned whole.
// PRE: normalized contains digits only
// POST: Returns at most four characters
func Last4(normalized string) string {
	if len(normalized) <= 4 {
		return normalized
	}
	return normalized[len(normalized)-4:]
}

// Mask renders the standard masked display form for a last-4 fragment.
func Mask(last4 string) string {
	return "***-****-" + last4
}

// Format renders a normalized Korean mobile/landline number with dashes for
// display. Unrecognised lengths are returned unchanged.
func Format(normalized string) string {
	switch len(normalized) {
	case 11:
		return normalized[:3] + "-" + normalized[3:7] + "-" + normalized[7:]
	case 10:
		return normalized[:3] + "-" + normalized[3:6] + "-" + normalized[6:]
	default:
		return normalized
	}
}
