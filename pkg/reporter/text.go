package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/notemark/internal/ui/pretty"
	"github.com/yaklabco/notemark/pkg/index"
	"github.com/yaklabco/notemark/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No notes found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.RelPath),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		}
	}

	if result.Mode == runner.ModeFormat {
		r.reportFormat(result)
	} else {
		r.reportIndex(result)
	}

	return findings(result), nil
}

// reportIndex writes references, unresolved links and tags.
func (r *TextReporter) reportIndex(result *runner.Result) {
	report := result.Graph.Report()

	if r.opts.ShowRefs {
		for _, file := range report.Files {
			if len(file.Refs) == 0 {
				continue
			}
			fmt.Fprintln(r.bw, r.styles.FilePath.Render(file.Path))
			for _, ref := range file.Refs {
				fmt.Fprintf(r.bw, "  %s %s %s\n",
					r.styles.Location.Render(fmt.Sprintf("%-7s", pretty.Location(ref.Line, ref.Column))),
					r.styles.Kind.Render(fmt.Sprintf("%-8s", ref.Kind)),
					r.styles.ForKind(ref.Kind).Render(refSource(ref)),
				)
			}
			fmt.Fprintln(r.bw)
		}
	}

	for _, u := range report.Unresolved {
		fmt.Fprintf(r.bw, "%s:%s: %s %s\n",
			r.styles.FilePath.Render(u.Path),
			r.styles.Location.Render(pretty.Location(u.Ref.Line, u.Ref.Column)),
			r.styles.Unresolved.Render("unresolved"),
			refSource(u.Ref),
		)
	}

	if r.opts.ShowTags && len(report.Tags) > 0 {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render("Tags"))
		for _, tag := range report.Tags {
			fmt.Fprintf(r.bw, "  %s %s\n",
				r.styles.Tag.Render("#"+tag.Name),
				r.styles.Dim.Render(fmt.Sprintf("(%d)", tag.Count)),
			)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(report.Summary))
	}
}

// reportFormat lists files that are not in canonical form.
func (r *TextReporter) reportFormat(result *runner.Result) {
	for _, file := range result.Changed() {
		verb := "would reformat"
		if file.Written {
			verb = "reformatted"
		}
		fmt.Fprintf(r.bw, "%s %s\n", r.styles.Changed.Render(verb), r.styles.FilePath.Render(file.RelPath))
	}

	if !r.opts.ShowSummary {
		return
	}

	stats := result.Stats
	switch {
	case stats.FilesChanged == 0:
		fmt.Fprintln(r.bw, r.styles.Success.Render(
			fmt.Sprintf("%d %s already canonical", stats.FilesProcessed, plural(stats.FilesProcessed, "file"))))
	case stats.FilesWritten > 0:
		fmt.Fprintf(r.bw, "%d %s reformatted, %d unchanged\n",
			stats.FilesWritten, plural(stats.FilesWritten, "file"), stats.FilesProcessed-stats.FilesChanged)
	default:
		fmt.Fprintf(r.bw, "%d %s would be reformatted, %d unchanged\n",
			stats.FilesChanged, plural(stats.FilesChanged, "file"), stats.FilesProcessed-stats.FilesChanged)
	}
}

// refSource renders a reference the way it reads in source.
func refSource(ref index.Ref) string {
	switch ref.Kind {
	case "tag":
		return "#" + ref.Target
	case "embed":
		return "!" + bracketed(ref)
	default:
		return bracketed(ref)
	}
}

func bracketed(ref index.Ref) string {
	if ref.Text != "" {
		return "[[" + ref.Target + "|" + ref.Text + "]]"
	}
	return "[[" + ref.Target + "]]"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
