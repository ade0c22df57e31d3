// Package reporter writes index and format results in several output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/notemark/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of findings reported (unresolved links for an
	// index run, files needing changes for a format run) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// findings counts what a run reports as actionable.
func findings(result *runner.Result) int {
	if result == nil {
		return 0
	}
	if result.Mode == runner.ModeFormat {
		return result.Stats.FilesChanged
	}
	if result.Graph == nil {
		return 0
	}
	return len(result.Graph.Unresolved())
}
