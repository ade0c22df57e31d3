package mdast

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// Builder errors. They indicate a tokenizer or wiring defect, never bad input:
// tokenizers only hand complete matches to the builder.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnbalanced      = errors.New("unbalanced construct")
	ErrEmptyValue      = errors.New("construct without id or name")
)

// Builder turns construct token streams into nodes.
// It owns a stack of open nodes; a construct is pushed on Enter, receives
// attribute values through Attach and is popped by Exit.
// A Builder belongs to one parse pass and is not safe for concurrent use.
type Builder struct {
	source    []byte
	root      ast.Node
	stack     []frame
	completed []Node
}

type frame struct {
	node  Node
	start int
}

// NewBuilder creates a builder over source. Completed nodes are appended to
// root when it is non-nil; otherwise they are only reported by Completed.
func NewBuilder(source []byte, root ast.Node) *Builder {
	return &Builder{source: source, root: root}
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Enter pushes a new empty node of the given construct, starting at the
// byte offset start, as a child of the current stack top or the root.
func (b *Builder) Enter(kind ConstructKind, start int) error {
	node := newNode(kind)
	if node == nil {
		return fmt.Errorf("enter %s: %w", kind, ErrUnexpectedToken)
	}

	if parent := b.parent(); parent != nil {
		parent.AppendChild(parent, node)
	}
	b.stack = append(b.stack, frame{node: node, start: start})

	return nil
}

// Attach writes the value of an ID, text or name token into the node at the
// top of the stack. Marker and separator tokens are accepted and ignored.
func (b *Builder) Attach(tok Token) error {
	if len(b.stack) == 0 {
		return fmt.Errorf("attach %s: %w", tok.Kind, ErrUnbalanced)
	}

	top := b.stack[len(b.stack)-1]
	if tok.Kind.Construct() != top.node.Construct() || tok.StartOffset < top.start {
		return fmt.Errorf("attach %s to %s: %w", tok.Kind, top.node.Construct(), ErrUnexpectedToken)
	}
	if !tok.Kind.IsValue() {
		return nil
	}

	raw := tok.Text(b.source)

	switch node := top.node.(type) {
	case *Wikilink:
		if tok.Kind == TokWikilinkID {
			node.ID = Unescape(raw)
		} else {
			node.Label = Unescape(raw)
		}
	case *Embed:
		if tok.Kind == TokEmbedID {
			node.ID = Unescape(raw)
		} else {
			node.Label = Unescape(raw)
		}
	case *Tag:
		node.Name = string(raw)
	}

	return nil
}

// Exit applies defaults to the node at the top of the stack, records its
// span ending at the byte offset end, and pops it.
func (b *Builder) Exit(end int) (Node, error) {
	if len(b.stack) == 0 {
		return nil, fmt.Errorf("exit: %w", ErrUnbalanced)
	}

	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	switch node := top.node.(type) {
	case *Wikilink:
		if node.Label == "" {
			node.Label = node.ID
		}
	case *Embed:
		if node.Label == "" {
			node.Label = node.ID
		}
	}

	if !hasValue(top.node) {
		if parent := top.node.Parent(); parent != nil {
			parent.RemoveChild(parent, top.node)
		}
		return nil, fmt.Errorf("exit %s: %w", top.node.Construct(), ErrEmptyValue)
	}

	setSpan(top.node, SourceRange{StartOffset: top.start, EndOffset: end})
	b.completed = append(b.completed, top.node)

	return top.node, nil
}

// Feed builds one node from the tokens of a single construct occurrence.
// The first token must be the construct's opening marker.
func (b *Builder) Feed(tokens []Token) (Node, error) {
	if len(tokens) == 0 || !tokens[0].Kind.IsOpen() {
		return nil, fmt.Errorf("feed: %w", ErrUnexpectedToken)
	}

	depth := b.Depth()
	if err := b.Enter(tokens[0].Kind.Construct(), tokens[0].StartOffset); err != nil {
		return nil, err
	}

	for _, tok := range tokens[1:] {
		if err := b.Attach(tok); err != nil {
			b.abandon(depth)
			return nil, err
		}
	}

	node, err := b.Exit(tokens[len(tokens)-1].EndOffset)
	if err != nil {
		return nil, err
	}
	if b.Depth() != depth {
		return nil, fmt.Errorf("feed %s: %w", node.Construct(), ErrUnbalanced)
	}

	return node, nil
}

// Completed returns the nodes closed so far, in source order.
func (b *Builder) Completed() []Node {
	return b.completed
}

// Close reports an error if any node is still open.
func (b *Builder) Close() error {
	if len(b.stack) != 0 {
		return fmt.Errorf("%d open constructs: %w", len(b.stack), ErrUnbalanced)
	}
	return nil
}

func (b *Builder) parent() ast.Node {
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1].node
	}
	return b.root
}

// abandon pops and detaches nodes until the stack is back at depth.
func (b *Builder) abandon(depth int) {
	for len(b.stack) > depth {
		top := b.stack[len(b.stack)-1].node
		b.stack = b.stack[:len(b.stack)-1]
		if parent := top.Parent(); parent != nil {
			parent.RemoveChild(parent, top)
		}
	}
}

func hasValue(n Node) bool {
	switch node := n.(type) {
	case *Wikilink:
		return node.ID != ""
	case *Embed:
		return node.ID != ""
	case *Tag:
		return node.Name != ""
	default:
		return false
	}
}
