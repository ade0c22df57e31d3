// Package charclass provides the rune predicates the construct tokenizers are
// built on. Every predicate is total: it accepts any rune, including EOF, and
// never fails.
package charclass

import "unicode"

// EOF is the end-of-input sentinel passed to predicates.
const EOF rune = -1

// Structural markers.
const (
	OpenBracket  = '['
	CloseBracket = ']'
	Pipe         = '|'
	Hash         = '#'
	Bang         = '!'
	Backslash    = '\\'
)

// IsOpenBracket reports whether r is '['.
func IsOpenBracket(r rune) bool { return r == OpenBracket }

// IsCloseBracket reports whether r is ']'.
func IsCloseBracket(r rune) bool { return r == CloseBracket }

// IsPipe reports whether r is '|'.
func IsPipe(r rune) bool { return r == Pipe }

// IsHash reports whether r is '#'.
func IsHash(r rune) bool { return r == Hash }

// IsBang reports whether r is '!'.
func IsBang(r rune) bool { return r == Bang }

// IsBackslash reports whether r is '\'.
func IsBackslash(r rune) bool { return r == Backslash }

// IsEscapable reports whether a backslash before r makes r literal content
// inside an ID or display text segment.
func IsEscapable(r rune) bool {
	return r == OpenBracket || r == CloseBracket || r == Pipe
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool { return r >= '0' && r <= '9' }

// IsASCIILetter reports whether r is an ASCII letter.
func IsASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsLineEnding reports whether r is CR or LF.
func IsLineEnding(r rune) bool { return r == '\r' || r == '\n' }

// IsWhitespace reports whether r is Unicode white space, including
// no-break and ideographic spaces.
func IsWhitespace(r rune) bool { return r != EOF && unicode.IsSpace(r) }

// IsIDChar reports whether r may appear in a wikilink or embed ID.
// '[', ']', '|' and '\' are structurally reserved and never match.
func IsIDChar(r rune) bool {
	if IsASCIILetter(r) || IsDigit(r) {
		return true
	}
	switch r {
	case '-', '_', '.', '~', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '@', '{', '}', ' ':
		return true
	default:
		return false
	}
}

// letterBlocks are the Unicode ranges accepted as tag letters besides ASCII.
//
//nolint:gochecknoglobals // Read-only lookup table.
var letterBlocks = [...]struct{ lo, hi rune }{
	{0x00C0, 0x00D6}, // Latin-1 Supplement (without ×)
	{0x00D8, 0x00F6}, // Latin-1 Supplement (without ÷)
	{0x00F8, 0x00FF}, // Latin-1 Supplement
	{0x0100, 0x017F}, // Latin Extended-A
	{0x0180, 0x024F}, // Latin Extended-B
	{0x0370, 0x03FF}, // Greek and Coptic
	{0x0400, 0x04FF}, // Cyrillic
	{0x0530, 0x058F}, // Armenian
	{0x0590, 0x05FF}, // Hebrew
	{0x0600, 0x06FF}, // Arabic
	{0x0900, 0x097F}, // Devanagari
	{0x4E00, 0x9FFF}, // CJK Unified Ideographs
	{0xAC00, 0xD7AF}, // Hangul Syllables
}

// IsTagNameStart reports whether r may begin a tag name.
// Digits are excluded so a leading digit never starts a tag.
func IsTagNameStart(r rune) bool {
	if IsASCIILetter(r) {
		return true
	}
	if r < letterBlocks[0].lo {
		return false
	}
	for _, b := range letterBlocks {
		if r >= b.lo && r <= b.hi {
			return true
		}
	}
	return false
}

// IsTagNameChar reports whether r may continue a tag name.
// pathStyle additionally admits '/' for hierarchical tags like #area/topic.
func IsTagNameChar(r rune, pathStyle bool) bool {
	if IsTagNameStart(r) || IsDigit(r) || r == '_' || r == '-' {
		return true
	}
	return pathStyle && r == '/'
}

// IsDisplayTextChar reports whether r may appear in a display text segment.
func IsDisplayTextChar(r rune) bool {
	return r != EOF && !IsLineEnding(r) && r != CloseBracket
}

// IsBoundary reports whether r, as the previously consumed rune, allows a
// construct to start: whitespace, line start or end of input.
// Line start is reported by the cursor as '\n'.
func IsBoundary(r rune) bool {
	return r == EOF || IsWhitespace(r)
}

// IsLinkBoundary is the boundary used by bracketed constructs: any rune that
// is not a letter or digit. This keeps word[[id]] literal while allowing
// _[[id]]_ and [[[id]]].
func IsLinkBoundary(r rune) bool {
	if IsBoundary(r) {
		return true
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
