package mdast

// TokenKind classifies a span of construct syntax in the Markdown source.
type TokenKind uint16

// Token kinds emitted by the construct tokenizers.
const (
	TokText TokenKind = iota // literal run (host-less scanning only)

	TokWikilinkOpen  // '[['
	TokWikilinkID    // target id
	TokWikilinkSep   // '|'
	TokWikilinkText  // display text
	TokWikilinkClose // ']]'

	TokTagMarker // '#'
	TokTagName   // tag name

	TokEmbedOpen  // '![['
	TokEmbedID    // target id
	TokEmbedSep   // '|'
	TokEmbedText  // display text
	TokEmbedClose // ']]'
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenNames = [...]string{
	TokText:          "Text",
	TokWikilinkOpen:  "WikilinkOpen",
	TokWikilinkID:    "WikilinkID",
	TokWikilinkSep:   "WikilinkSep",
	TokWikilinkText:  "WikilinkText",
	TokWikilinkClose: "WikilinkClose",
	TokTagMarker:     "TagMarker",
	TokTagName:       "TagName",
	TokEmbedOpen:     "EmbedOpen",
	TokEmbedID:       "EmbedID",
	TokEmbedSep:      "EmbedSep",
	TokEmbedText:     "EmbedText",
	TokEmbedClose:    "EmbedClose",
}

// String returns the token kind name.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "Unknown"
}

// Construct returns the construct a token kind belongs to.
// TokText belongs to no construct and reports ConstructNone.
func (k TokenKind) Construct() ConstructKind {
	switch k {
	case TokWikilinkOpen, TokWikilinkID, TokWikilinkSep, TokWikilinkText, TokWikilinkClose:
		return ConstructWikilink
	case TokTagMarker, TokTagName:
		return ConstructTag
	case TokEmbedOpen, TokEmbedID, TokEmbedSep, TokEmbedText, TokEmbedClose:
		return ConstructEmbed
	default:
		return ConstructNone
	}
}

// IsOpen reports whether k is the opening marker of a construct.
func (k TokenKind) IsOpen() bool {
	return k == TokWikilinkOpen || k == TokTagMarker || k == TokEmbedOpen
}

// IsValue reports whether k carries an attribute value (ID, text or name).
func (k TokenKind) IsValue() bool {
	switch k {
	case TokWikilinkID, TokWikilinkText, TokTagName, TokEmbedID, TokEmbedText:
		return true
	default:
		return false
	}
}

// Token represents a classified span of bytes in the Markdown source.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens checks that a token slice is well formed:
//   - every token is non-empty and lies within [0, contentLen),
//   - tokens are ordered and non-overlapping,
//   - every construct occurrence starts with its opening marker and
//     contains only tokens of its own construct.
func ValidateTokens(tokens []Token, contentLen int) bool {
	current := ConstructNone
	prevEnd := 0

	for _, tok := range tokens {
		if tok.IsEmpty() || tok.StartOffset < prevEnd || tok.EndOffset > contentLen {
			return false
		}
		prevEnd = tok.EndOffset

		switch {
		case tok.Kind == TokText:
			current = ConstructNone
		case tok.Kind.IsOpen():
			current = tok.Kind.Construct()
		case tok.Kind.Construct() != current:
			return false
		}
	}

	return true
}
