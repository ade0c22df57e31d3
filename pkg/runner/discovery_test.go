package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/notemark/pkg/runner"
)

// tree writes files (relative path to content) under a new temp dir.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"index.md":                  "",
		"daily/2024-01-01.md":       "",
		"daily/2024-01-02.markdown": "",
		"archive/old.md":            "",
		"archive/keep/note.md":      "",
		"drafts/idea.draft.md":      "",
		"assets/diagram.svg":        "",
		"notes.txt":                 "",
		".obsidian/workspace.md":    "",
		"daily/.hidden.md":          "",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{
				"archive/keep/note.md", "archive/old.md", "daily/2024-01-01.md",
				"daily/2024-01-02.markdown", "drafts/idea.draft.md", "index.md",
			},
		},
		{
			name: "directory glob",
			opts: runner.Options{ExcludeGlobs: []string{"archive/**"}},
			want: []string{"daily/2024-01-01.md", "daily/2024-01-02.markdown", "drafts/idea.draft.md", "index.md"},
		},
		{
			name: "base name glob",
			opts: runner.Options{ExcludeGlobs: []string{"*.draft.md", "daily/*.markdown"}},
			want: []string{"archive/keep/note.md", "archive/old.md", "daily/2024-01-01.md", "index.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".TXT"}},
			want: []string{"notes.txt"},
		},
		{
			name: "explicit paths are deduplicated",
			opts: runner.Options{Paths: []string{"daily", "daily/2024-01-01.md", "index.md"}},
			want: []string{"daily/2024-01-01.md", "daily/2024-01-02.markdown", "index.md"},
		},
		{
			name: "explicit file without note extension",
			opts: runner.Options{Paths: []string{"notes.txt"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := tree(t, files)
			opts := tt.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, got))
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: tree(t, map[string]string{"a.md": ""})})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	t.Parallel()

	dir := tree(t, map[string]string{"notes/a.md": ""})
	external := tree(t, map[string]string{"b.md": ""})
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "notes", "linked")))

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
