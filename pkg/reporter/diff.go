package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/notemark/internal/ui/pretty"
	"github.com/yaklabco/notemark/pkg/runner"
)

// diffContextLines is the number of unchanged lines around each hunk.
const diffContextLines = 3

// DiffReporter formats the canonical rewrite of each file as a unified diff
// in git style. Index runs produce no diff and fall back to the text report.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	if result == nil || result.Mode != runner.ModeFormat {
		return NewTextReporter(r.opts).Report(ctx, result)
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.RelPath),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if !file.Changed {
			continue
		}

		added, deleted, err := r.writeDiff(file)
		if err != nil {
			return 0, err
		}
		additions += added
		deletions += deleted
	}

	if result.Stats.FilesChanged > 0 && r.opts.ShowSummary {
		r.writeSummary(result.Stats.FilesChanged, additions, deletions)
	}

	return findings(result), nil
}

// writeDiff outputs a single file's diff and returns its line counts.
func (r *DiffReporter) writeDiff(file runner.FileOutcome) (int, int, error) {
	text, err := UnifiedDiff(file.RelPath, file.Source, file.Canonical)
	if err != nil {
		return 0, 0, fmt.Errorf("diff %s: %w", file.RelPath, err)
	}

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(
		fmt.Sprintf("diff --git a/%s b/%s", file.RelPath, file.RelPath)))

	var additions, deletions int
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "+++"):
			styled = r.styles.DiffAdd.Render(line)
		case strings.HasPrefix(line, "---"):
			styled = r.styles.DiffRemove.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled = r.styles.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			additions++
			styled = r.styles.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			deletions++
			styled = r.styles.DiffRemove.Render(line)
		default:
			styled = r.styles.DiffContext.Render(line)
		}
		fmt.Fprintln(r.bw, styled)
	}

	fmt.Fprintln(r.bw) // Blank line between files
	return additions, deletions, nil
}

// writeSummary writes a git-style summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

// UnifiedDiff returns the unified diff from before to after, labelled
// a/path and b/path. It is empty when the contents are equal.
func UnifiedDiff(path string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContextLines,
	})
}
