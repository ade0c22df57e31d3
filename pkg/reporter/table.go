package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/notemark/internal/ui/pretty"
	"github.com/yaklabco/notemark/pkg/index"
	"github.com/yaklabco/notemark/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// Column positions of the reference table.
const (
	refColFile = iota
	refColLoc
	refColKind
	refColTarget
	refColStatus
)

// TableReporter formats results as styled tables.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	if result.Mode == runner.ModeFormat {
		r.reportFormat(result)
	} else {
		r.reportIndex(result)
	}

	return findings(result), nil
}

// reportIndex outputs one table of references grouped by file and,
// optionally, a table of tags.
func (r *TableReporter) reportIndex(result *runner.Result) {
	report := result.Graph.Report()

	unresolved := make(map[string]bool, len(report.Unresolved))
	for _, u := range report.Unresolved {
		unresolved[refKey(u.Path, u.Ref)] = true
	}

	table := pretty.Table{
		Headers:    []string{"FILE", "LOC", "KIND", "TARGET", "STATUS"},
		Flex:       refColTarget,
		PathColumn: refColFile,
	}
	for _, file := range report.Files {
		var group [][]string
		for _, ref := range file.Refs {
			status := ""
			switch {
			case unresolved[refKey(file.Path, ref)]:
				status = "unresolved"
			case ref.Embed != nil:
				status = string(ref.Embed.Kind)
			}
			if !r.opts.ShowRefs && status != "unresolved" {
				continue
			}
			row := make([]string, refColStatus+1)
			row[refColFile] = file.Path
			row[refColLoc] = pretty.Location(ref.Line, ref.Column)
			row[refColKind] = ref.Kind
			row[refColTarget] = refSource(ref)
			row[refColStatus] = status
			group = append(group, row)
		}
		table.Groups = append(table.Groups, group)
	}
	fmt.Fprint(r.bw, r.formatter.FormatTable(table))

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.RelPath),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)))
		}
	}

	if r.opts.ShowTags {
		fmt.Fprint(r.bw, r.formatter.FormatTable(tagTable(report.Tags)))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(report.Summary, len(report.Tags)))
	}
}

// reportFormat outputs the status of every file.
func (r *TableReporter) reportFormat(result *runner.Result) {
	table := pretty.Table{
		Headers:    []string{"FILE", "STATUS"},
		Flex:       1,
		PathColumn: 0,
	}

	var rows [][]string
	for _, file := range result.Files {
		status := "canonical"
		switch {
		case file.Error != nil:
			status = "error: " + file.Error.Error()
		case file.Written:
			status = "reformatted"
		case file.Changed:
			status = "would reformat"
		}
		rows = append(rows, []string{file.RelPath, status})
	}
	table.Groups = [][][]string{rows}
	fmt.Fprint(r.bw, r.formatter.FormatTable(table))

	if r.opts.ShowSummary {
		stats := result.Stats
		fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf(" %d checked | %d changed | %d written | %d errors",
			stats.FilesProcessed, stats.FilesChanged, stats.FilesWritten, stats.FilesErrored)))
	}
}

func tagTable(tags []index.TagCount) pretty.Table {
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{"#" + tag.Name, strconv.Itoa(tag.Count), strconv.Itoa(len(tag.Files))})
	}
	return pretty.Table{
		Headers:    []string{"TAG", "COUNT", "FILES"},
		Groups:     [][][]string{rows},
		PathColumn: -1,
	}
}

func refKey(path string, ref index.Ref) string {
	return fmt.Sprintf("%s:%d:%d", path, ref.Line, ref.Column)
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
