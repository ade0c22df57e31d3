package goldmark

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/pipeline"
	"github.com/yaklabco/notemark/pkg/render"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor, nil)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
			if p.Pipeline() == nil {
				t.Error("expected default pipeline")
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	parser := New(FlavorCommonMark, nil)
	ctx := context.Background()

	content := []byte("# Hello\n\nSee [[World|the world]] #greeting\n")
	snapshot, err := parser.Parse(ctx, "test.md", content)

	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Path != "test.md" {
		t.Errorf("Path = %q, want %q", snapshot.Path, "test.md")
	}

	if string(snapshot.Content) != string(content) {
		t.Errorf("Content mismatch")
	}

	// Verify content is a copy, not the same slice.
	if &snapshot.Content[0] == &content[0] {
		t.Error("Content should be a copy, not the same slice")
	}

	if len(snapshot.Lines) != 4 {
		t.Errorf("len(Lines) = %d, want 4", len(snapshot.Lines))
	}

	if len(snapshot.Tokens) != 7 {
		t.Errorf("len(Tokens) = %d, want 7", len(snapshot.Tokens))
	}

	if snapshot.Root == nil || snapshot.Root.Kind() != ast.KindDocument {
		t.Fatal("expected document root")
	}

	nodes := snapshot.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("len(Nodes()) = %d, want 2", len(nodes))
	}

	link, ok := nodes[0].(*mdast.Wikilink)
	if !ok || link.ID != "World" || link.Label != "the world" {
		t.Errorf("first node = %#v, want wikilink World|the world", nodes[0])
	}

	pos := snapshot.PositionOf(nodes[1])
	if pos.StartLine != 3 || pos.StartColumn != 25 {
		t.Errorf("tag position = %d:%d, want 3:25", pos.StartLine, pos.StartColumn)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	parser := New(FlavorCommonMark, nil)

	snapshot, err := parser.Parse(context.Background(), "empty.md", []byte{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Root == nil {
		t.Fatal("expected Root to be non-nil for empty content")
	}

	if len(snapshot.Tokens) != 0 {
		t.Errorf("expected no tokens, got %d", len(snapshot.Tokens))
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	parser := New(FlavorCommonMark, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))

	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	parser := New(FlavorCommonMark, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))

	if err == nil {
		t.Error("expected error for expired context")
	}
}

func TestParser_Parse_GFM(t *testing.T) {
	content := []byte("| a | b |\n|---|---|\n| [[x]] | #y |\n\n- [ ] task [[z]]\n")

	snapshot, err := New(FlavorGFM, nil).Parse(context.Background(), "gfm.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var ids []string
	for _, n := range snapshot.Nodes() {
		switch node := n.(type) {
		case *mdast.Wikilink:
			ids = append(ids, node.ID)
		case *mdast.Tag:
			ids = append(ids, "#"+node.Name)
		}
	}

	if got := strings.Join(ids, ","); got != "x,#y,z" {
		t.Errorf("constructs = %q, want %q", got, "x,#y,z")
	}
}

func TestParser_Parse_MultipleFiles(t *testing.T) {
	parser := New(FlavorCommonMark, nil)
	ctx := context.Background()

	files := []struct {
		path    string
		content string
		nodes   int
	}{
		{"file1.md", "# File 1", 0},
		{"file2.md", "# File 2\n\n[[file1]]", 1},
		{"file3.md", "- [[file1]]\n- ![[file2]] #list", 3},
	}

	for _, file := range files {
		t.Run(file.path, func(t *testing.T) {
			snapshot, err := parser.Parse(ctx, file.path, []byte(file.content))

			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if snapshot.Path != file.path {
				t.Errorf("Path = %q, want %q", snapshot.Path, file.path)
			}

			if len(snapshot.Nodes()) != file.nodes {
				t.Errorf("len(Nodes()) = %d, want %d", len(snapshot.Nodes()), file.nodes)
			}

			if !mdast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) {
				t.Error("tokens are not valid")
			}
		})
	}
}

func TestParser_Parse_SubsetPipeline(t *testing.T) {
	pipe, err := pipeline.New(pipeline.Wikilink())
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}

	snapshot, err := New(FlavorCommonMark, pipe).Parse(context.Background(), "a.md", []byte("#tag [[link]]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(snapshot.Nodes()) != 1 {
		t.Errorf("len(Nodes()) = %d, want 1", len(snapshot.Nodes()))
	}
}

func TestParser_Render(t *testing.T) {
	tests := []struct {
		name string
		opts []render.HTMLOption
		want string
	}{
		{"elements", nil, "<h1>Title</h1>\n" + `<p><wikilink id="a" text="b"/></p>` + "\n"},
		{"anchors", []render.HTMLOption{render.WithAnchors(".html")}, "<h1>Title</h1>\n" + `<p><a class="wikilink" href="a.html">b</a></p>` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(FlavorCommonMark, nil, tt.opts...)

			snapshot, err := p.Parse(context.Background(), "r.md", []byte("# Title\n\n[[a|b]]\n"))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			var buf bytes.Buffer
			if err := p.Render(&buf, snapshot); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Render() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
