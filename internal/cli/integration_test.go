package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/notemark/internal/cli"
	"github.com/yaklabco/notemark/internal/configloader"
	"github.com/yaklabco/notemark/pkg/fsutil"
)

// output holds what a command wrote.
type output struct {
	stdout string
	stderr string
}

// execute runs notemark with config files ignored and color off.
func execute(t *testing.T, stdin string, args ...string) (output, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-config", "--color", "never"}, args...))

	err := cmd.Execute()
	return output{stdout: stdout.String(), stderr: stderr.String()}, err
}

// vault writes a small note collection and returns its directory.
func vault(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"home.md":           "# Home\n\nSee [[projects|projects]] and [[inbox]]. #start\n",
		"projects.md":       "Back to [[home]]. ![[diagram.png]] #start #work\n",
		"drafts/scratch.md": "[[nowhere]]\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestIntegration_Render(t *testing.T) {
	t.Parallel()

	dir := vault(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "elements",
			args: []string{"render", "projects.md"},
			want: `<p>Back to <wikilink id="home" text="home"/>. <embed id="diagram.png" text="diagram.png"/> <tag name="start"/> <tag name="work"/></p>` + "\n",
		},
		{
			name: "anchors with suffix",
			args: []string{"render", "--anchors", "--suffix", ".html", "projects.md"},
			want: `<p>Back to <a class="wikilink" href="home.html">home</a>. <img class="embed" src="diagram.png" alt="diagram.png"> <span class="tag" data-tag="start">#start</span> <span class="tag" data-tag="work">#work</span></p>` + "\n",
		},
		{
			name: "tags disabled",
			args: []string{"render", "--disable", "tags", "projects.md"},
			want: `<p>Back to <wikilink id="home" text="home"/>. <embed id="diagram.png" text="diagram.png"/> #start #work</p>` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "", append([]string{"-C", dir}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.stdout)
		})
	}
}

func TestIntegration_RenderInlineStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "Meet [[alice|Alice]] #team\n", "render", "--inline")
	require.NoError(t, err)
	assert.Equal(t, `Meet <wikilink id="alice" text="Alice"/> <tag name="team"/>`+"\n", out.stdout)
}

func TestIntegration_RenderOutputFile(t *testing.T) {
	t.Parallel()

	dir := vault(t)
	out, err := execute(t, "", "-C", dir, "render", "home.md", "-o", "home.html")
	require.NoError(t, err)
	assert.Empty(t, out.stdout)

	html, err := os.ReadFile(filepath.Join(dir, "home.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Home</h1>")
	assert.Contains(t, string(html), `<wikilink id="projects" text="projects"/>`)
}

func TestIntegration_RenderErrors(t *testing.T) {
	t.Parallel()

	dir := vault(t)

	_, err := execute(t, "", "-C", dir, "render", "missing.md")
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))

	_, err = execute(t, "", "-C", dir, "render", "a.md", "b.md")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "", "-C", dir, "render", "--disable", "footnotes", "home.md")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, err = execute(t, "", "render", "--no-such-flag")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Fmt(t *testing.T) {
	t.Parallel()

	dir := vault(t)

	out, err := execute(t, "", "-C", dir, "fmt")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "would reformat home.md\n")
	assert.Contains(t, out.stdout, "1 file would be reformatted, 2 unchanged\n")

	_, err = execute(t, "", "-C", dir, "fmt", "--check")
	require.ErrorIs(t, err, cli.ErrUnformattedFiles)
	assert.Equal(t, cli.ExitFindings, cli.ExitCode(err))

	out, err = execute(t, "", "-C", dir, "fmt", "--format", "diff")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "-See [[projects|projects]] and [[inbox]]. #start\n")
	assert.Contains(t, out.stdout, "+See [[projects]] and [[inbox]]. #start\n")

	out, err = execute(t, "", "-C", dir, "fmt", "--write", "--check")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "reformatted home.md\n")

	content, err := os.ReadFile(filepath.Join(dir, "home.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Home\n\nSee [[projects]] and [[inbox]]. #start\n", string(content))

	_, err = execute(t, "", "-C", dir, "fmt", "--check")
	require.NoError(t, err, "formatted tree passes the check")
}

func TestIntegration_Index(t *testing.T) {
	t.Parallel()

	dir := vault(t)

	out, err := execute(t, "", "-C", dir, "index")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "drafts/scratch.md:1:1: unresolved [[nowhere]]\n")
	assert.Contains(t, out.stdout, "home.md:3:31: unresolved [[inbox]]\n")
	assert.Contains(t, out.stdout, "4 wikilinks, 3 tags, 1 embed in 3 files, 2 unresolved\n")

	_, err = execute(t, "", "-C", dir, "index", "--strict")
	require.ErrorIs(t, err, cli.ErrUnresolvedLinks)
	assert.Equal(t, cli.ExitFindings, cli.ExitCode(err))

	out, err = execute(t, "", "-C", dir, "index", "--ignore", "drafts/**", "--tags")
	require.NoError(t, err)
	assert.NotContains(t, out.stdout, "scratch")
	assert.Contains(t, out.stdout, "#start (2)")

	out, err = execute(t, "", "-C", dir, "index", "--disable", "wikilinks")
	require.NoError(t, err)
	assert.NotContains(t, out.stdout, "unresolved [[")
	assert.Contains(t, out.stdout, "0 wikilinks")
}

func TestIntegration_IndexJSON(t *testing.T) {
	t.Parallel()

	dir := vault(t)

	out, err := execute(t, "", "-C", dir, "index", "--format", "json")
	require.NoError(t, err)

	var report struct {
		Mode      string              `json:"mode"`
		Backlinks map[string][]string `json:"backlinks"`
		Summary   struct {
			Files      int `json:"files"`
			Unresolved int `json:"unresolved"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &report))

	assert.Equal(t, "index", report.Mode)
	assert.Equal(t, []string{"projects.md"}, report.Backlinks["home.md"])
	assert.Equal(t, 3, report.Summary.Files)
	assert.Equal(t, 2, report.Summary.Unresolved)
}

func TestIntegration_IndexTable(t *testing.T) {
	t.Parallel()

	dir := vault(t)

	out, err := execute(t, "", "-C", dir, "index", "--format", "table", "--refs")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "TARGET")
	assert.Contains(t, out.stdout, "![[diagram.png]]")
	assert.Contains(t, out.stdout, "2 unresolved links")
}

func TestIntegration_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := vault(t)
	cfgFile := filepath.Join(t.TempDir(), "notemark.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("ignore:\n  - \"drafts/**\"\nconstructs:\n  embeds: false\n"), 0o644))

	// With embeds off, goldmark takes "![" as an image opener, so
	// ![[diagram.png]] stays literal text and is not a wikilink either.
	out, err := execute(t, "", "-C", dir, "--config", cfgFile, "index")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "3 wikilinks, 3 tags, 0 embeds in 2 files, 1 unresolved\n")
	assert.NotContains(t, out.stdout, "diagram.png")

	bad := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("flavor: markdown-extra\n"), 0o644))

	_, err = execute(t, "", "-C", dir, "--config", bad, "index")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	var validationErr *configloader.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, bad, validationErr.FilePath)
}

func TestIntegration_InitAndConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := execute(t, "", "-C", dir, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".notemark.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "flavor: commonmark")

	_, err = execute(t, "", "-C", dir, "init")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, err = execute(t, "", "-C", dir, "init", "--force", "--full")
	require.NoError(t, err)

	out, err := execute(t, "", "-C", dir, "--config", filepath.Join(dir, ".notemark.yml"), "config")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "# loaded from "+filepath.Join(dir, ".notemark.yml"))
	assert.Contains(t, out.stdout, "flavor: commonmark\n")
	assert.Contains(t, out.stdout, "extensions:\n")

	out, err = execute(t, "", "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "NOTEMARK_FLAVOR")
	assert.Contains(t, out.stdout, "NOTEMARK_EMBEDS")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "unresolved", err: cli.ErrUnresolvedLinks, want: cli.ExitFindings},
		{name: "unformatted", err: cli.ErrUnformattedFiles, want: cli.ExitFindings},
		{name: "usage", err: cli.ErrInvalidUsage, want: cli.ExitInvalidUsage},
		{name: "config", err: errors.Join(cli.ErrConfig, errors.New("bad")), want: cli.ExitConfigError},
		{name: "validation", err: &configloader.ValidationError{Field: "jobs"}, want: cli.ExitConfigError},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitIOError},
		{name: "not found", err: fsutil.ErrNotFound, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}

	assert.True(t, cli.IsFindings(cli.ErrUnresolvedLinks))
	assert.False(t, cli.IsFindings(cli.ErrFilesFailed))
}
