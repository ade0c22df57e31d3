package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/notemark/pkg/render"
)

// FuzzParse checks that parsing arbitrary input never fails and that every
// construct node maps back to a source span that serializes to itself
// modulo canonical form.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading #tag",
		"- [[item]]",
		"> ![[quote.png|q]]",
		"```\n[[code]]\n```",
		"`[[span]]`",
		"[[[x]]]",
		"_[[em]]_",
		"#hello#world",
		`\#escaped`,
		`[[a\]b|c\|d]]`,
		"[link](#hello)",
		"line1\r\n#line2",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	parser := New(FlavorGFM, nil)

	f.Fuzz(func(t *testing.T, data []byte) {
		snapshot, err := parser.Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		for _, node := range snapshot.Nodes() {
			r := node.Range()
			if r.StartOffset < 0 || r.EndOffset > len(data) || r.IsEmpty() {
				t.Fatalf("node range %+v out of bounds", r)
			}
		}

		// Canonical output must parse to the same constructs.
		canonical := render.Canonicalize(snapshot.Content, snapshot.Root)
		again, err := parser.Parse(context.Background(), "fuzz.md", canonical)
		if err != nil {
			t.Fatalf("Parse(canonical) error = %v", err)
		}
		if got, want := len(again.Nodes()), len(snapshot.Nodes()); got != want {
			t.Fatalf("canonical form has %d constructs, want %d", got, want)
		}
		for i, node := range again.Nodes() {
			if render.Serialize(node) != render.Serialize(snapshot.Nodes()[i]) {
				t.Fatalf("construct %d changed: %q vs %q", i,
					render.Serialize(node), render.Serialize(snapshot.Nodes()[i]))
			}
		}
	})
}
