package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/syntax"
)

//nolint:gochecknoglobals // Context keys are process-wide by goldmark's design.
var tokensKey = parser.NewContextKey()

// Tokens returns the construct tokens recorded while parsing with pc,
// in source order.
func Tokens(pc parser.Context) []mdast.Token {
	if v, ok := pc.Get(tokensKey).([]mdast.Token); ok {
		return v
	}
	return nil
}

// inlineParser adapts the trigger registry to goldmark's inline parser
// interface.
type inlineParser struct {
	registry *syntax.Registry
	triggers []byte
}

var _ parser.CloseBlocker = (*inlineParser)(nil)

func newInlineParser(p *Pipeline) *inlineParser {
	triggers := make([]byte, 0, len(p.registry.Triggers()))
	for _, r := range p.registry.Triggers() {
		triggers = append(triggers, byte(r))
	}
	return &inlineParser{registry: p.registry, triggers: triggers}
}

// Trigger implements parser.InlineParser.
func (ip *inlineParser) Trigger() []byte {
	return ip.triggers
}

// Parse implements parser.InlineParser. It returns nil when no construct
// matches, which hands the trigger back to goldmark's own parsers.
func (ip *inlineParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	cursor := syntax.NewCursor(line, block.PrecendingCharacter())

	match, ok := ip.registry.Match(cursor)
	if !ok {
		return nil
	}
	match = match.Shift(segment.Start)

	node, err := mdast.NewBuilder(block.Source(), nil).Feed(match.Tokens)
	if err != nil {
		// Tokenizers only emit complete matches; treat a builder failure
		// like a rejection so the input stays literal.
		return nil
	}

	block.Advance(match.Len())
	pc.Set(tokensKey, append(Tokens(pc), match.Tokens...))

	return node
}

// CloseBlock implements parser.CloseBlocker. goldmark flushes the text
// before a trigger into its own node, so a rejected trigger splits the
// line in two. Joining the halves again keeps character references such
// as &#39; intact.
func (ip *inlineParser) CloseBlock(parent ast.Node, block text.Reader, _ parser.Context) {
	source := block.Source()
	_ = ast.Walk(parent, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.HasChildren() {
			ip.mergeSplitText(n, source)
		}
		return ast.WalkContinue, nil
	})
}

// mergeSplitText joins adjacent text children of parent that were split
// at one of our trigger bytes.
func (ip *inlineParser) mergeSplitText(parent ast.Node, source []byte) {
	for child := parent.FirstChild(); child != nil; {
		next := child.NextSibling()
		left, ok := child.(*ast.Text)
		right, rok := next.(*ast.Text)
		if ok && rok && ip.splitAt(right, source) &&
			!left.SoftLineBreak() && !left.HardLineBreak() &&
			left.Merge(right, source) {
			parent.RemoveChild(parent, right)
			continue
		}
		child = next
	}
}

// splitAt reports whether t starts at a trigger byte.
func (ip *inlineParser) splitAt(t *ast.Text, source []byte) bool {
	start := t.Segment.Start
	return start < len(source) && bytes.IndexByte(ip.triggers, source[start]) >= 0
}
