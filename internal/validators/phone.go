package validators

import "strings"

// NormalizePhone strips formatting and returns the digits, keeping a leading
// '+'. ok is false when fewer than 8 or more than 15 digits remain.
func NormalizePhone(phone string) (normalized string, ok bool) {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	out := b.String()
	digits := len(strings.TrimPrefix(out, "+"))
	if digits < 8 || digits > 15 {
		return "", false
	}
	return out, true
}
