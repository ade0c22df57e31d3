package pipeline

import (
	"github.com/yaklabco/notemark/pkg/charclass"
	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/render"
	"github.com/yaklabco/notemark/pkg/syntax"
)

// Construct describes one inline construct: where it triggers, how it is
// tokenized, which node kind the tokens build and how a node is written
// back as source.
type Construct struct {
	// Name identifies the construct; it must match the tokenizer's name.
	Name string

	// Trigger is the rune an occurrence starts with.
	Trigger rune

	// Kind is the node variant the builder creates.
	Kind mdast.ConstructKind

	// Tokenizer recognizes occurrences.
	Tokenizer syntax.Tokenizer

	// Serialize writes a node back as source. Optional; render.Serialize
	// is used when nil.
	Serialize func(mdast.Node) string
}

// Wikilink returns the [[id]] / [[id|text]] construct.
func Wikilink() Construct {
	return Construct{
		Name:      "wikilink",
		Trigger:   charclass.OpenBracket,
		Kind:      mdast.ConstructWikilink,
		Tokenizer: syntax.NewWikilinkTokenizer(),
		Serialize: render.Serialize,
	}
}

// Tag returns the #name construct.
func Tag(opts ...syntax.TagOption) Construct {
	return Construct{
		Name:      "tag",
		Trigger:   charclass.Hash,
		Kind:      mdast.ConstructTag,
		Tokenizer: syntax.NewTagTokenizer(opts...),
		Serialize: render.Serialize,
	}
}

// Embed returns the ![[id]] / ![[id|text]] construct.
func Embed() Construct {
	return Construct{
		Name:      "embed",
		Trigger:   charclass.Bang,
		Kind:      mdast.ConstructEmbed,
		Tokenizer: syntax.NewEmbedTokenizer(),
		Serialize: render.Serialize,
	}
}

// Defaults returns all three constructs with default options.
func Defaults() []Construct {
	return []Construct{Wikilink(), Tag(), Embed()}
}
