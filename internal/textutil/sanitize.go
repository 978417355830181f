package textutil

import "strings"

// Token converts value into a lowercase path segment made of [a-z0-9_.-].
// Other characters become underscores, runs of underscores collapse, and
// leading or trailing separators are trimmed. Empty input yields "unknown".
func Token(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	lastUnderscore := false
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}
	out := strings.Trim(b.String(), "_-.")
	if out == "" {
		return "unknown"
	}
	return out
}
