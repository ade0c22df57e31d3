package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/notemark/pkg/index"
	"github.com/yaklabco/notemark/pkg/runner"
)

// jsonVersion is the version of the JSON output layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version    string              `json:"version"`
	Mode       string              `json:"mode"`
	Files      []JSONFileResult    `json:"files"`
	Tags       []index.TagCount    `json:"tags"`
	Backlinks  map[string][]string `json:"backlinks"`
	Unresolved []index.Unresolved  `json:"unresolved"`
	Summary    JSONSummary         `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path    string      `json:"path"`
	Refs    []index.Ref `json:"refs"`
	Changed bool        `json:"changed,omitempty"`
	Written bool        `json:"written,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	index.Summary

	FilesErrored int `json:"filesErrored"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildJSON(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return findings(result), nil
}

// BuildJSON converts a run result into its JSON layout. Slices and maps
// are never nil so consumers always see arrays and objects.
func BuildJSON(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:    jsonVersion,
		Mode:       runner.ModeIndex.String(),
		Files:      []JSONFileResult{},
		Tags:       []index.TagCount{},
		Backlinks:  map[string][]string{},
		Unresolved: []index.Unresolved{},
	}

	if result == nil {
		return output
	}
	output.Mode = result.Mode.String()

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    file.RelPath,
			Refs:    []index.Ref{},
			Changed: file.Changed,
			Written: file.Written,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if file.File != nil {
			fileResult.Refs = file.File.Refs
		}
		output.Files = append(output.Files, fileResult)
	}

	if result.Graph != nil {
		report := result.Graph.Report()
		output.Summary.Summary = report.Summary
		output.Tags = report.Tags
		if report.Backlinks != nil {
			output.Backlinks = report.Backlinks
		}
		if report.Unresolved != nil {
			output.Unresolved = report.Unresolved
		}
	}

	output.Summary.FilesErrored = result.Stats.FilesErrored
	output.Summary.FilesChanged = result.Stats.FilesChanged
	output.Summary.FilesWritten = result.Stats.FilesWritten

	return output
}
