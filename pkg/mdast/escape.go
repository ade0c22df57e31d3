package mdast

import "strings"

// Unescape removes the backslash from every \[, \] and \| sequence in raw.
// Other backslashes are literal content and are kept.
func Unescape(raw []byte) string {
	if !hasEscape(raw) {
		return string(raw)
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && isReserved(raw[i+1]) {
			i++
		}
		sb.WriteByte(raw[i])
	}
	return sb.String()
}

// EscapeID escapes every reserved byte in an ID.
func EscapeID(id string) string {
	if !strings.ContainsAny(id, "[]|") {
		return id
	}

	var sb strings.Builder
	sb.Grow(len(id) + 2)
	for i := 0; i < len(id); i++ {
		if isReserved(id[i]) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(id[i])
	}
	return sb.String()
}

// EscapeText escapes display text. ']' always needs a backslash; '[' and '|'
// only when a literal backslash precedes them, which would otherwise be
// read as an escape.
func EscapeText(text string) string {
	if !strings.ContainsAny(text, "[]|") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + 2)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ']' || (isReserved(c) && i > 0 && text[i-1] == '\\') {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func hasEscape(raw []byte) bool {
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] == '\\' && isReserved(raw[i+1]) {
			return true
		}
	}
	return false
}

func isReserved(c byte) bool {
	return c == '[' || c == ']' || c == '|'
}
