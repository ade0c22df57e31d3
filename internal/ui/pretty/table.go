package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// Table is a set of rows split into groups. Groups are separated by a light
// rule; the whole table is framed by heavy rules.
type Table struct {
	Headers []string
	Groups  [][][]string

	// Flex is the column shrunk first when the table exceeds the terminal.
	Flex int
	// PathColumn is truncated from the left so file names survive. -1 for none.
	PathColumn int
}

// TableFormatter renders tables within a terminal width.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable renders a table. It returns "" when the table has no rows.
func (t *TableFormatter) FormatTable(table Table) string {
	if rowCount(table) == 0 {
		return ""
	}

	widths := t.columnWidths(table)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(formatCells(table.Headers, widths, -1)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	first := true
	for _, group := range table.Groups {
		if len(group) == 0 {
			continue
		}
		if !first {
			builder.WriteString(t.separator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		first = false

		for _, row := range group {
			builder.WriteString(formatCells(row, widths, table.PathColumn))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

func rowCount(table Table) int {
	n := 0
	for _, group := range table.Groups {
		n += len(group)
	}
	return n
}

// columnWidths sizes each column to its widest cell, then shrinks the flex
// column and the path column until the table fits the terminal.
func (t *TableFormatter) columnWidths(table Table) []int {
	widths := make([]int, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = max(minColumnWidth, lipgloss.Width(header))
	}
	for _, group := range table.Groups {
		for _, row := range group {
			for i, cell := range row {
				if i < len(widths) {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	for _, col := range []int{table.Flex, table.PathColumn} {
		if col < 0 || col >= len(widths) {
			continue
		}
		if excess := totalWidth(widths) - t.termWidth; excess > 0 {
			floor := max(minColumnWidth, lipgloss.Width(table.Headers[col]))
			widths[col] = max(floor, widths[col]-excess)
		}
	}

	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

// formatCells lays out one row. Cells are padded by display width, so
// styled or wide characters stay aligned.
func formatCells(cells []string, widths []int, pathColumn int) string {
	var builder strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == pathColumn {
			cell = truncateFilePath(cell, width)
		} else {
			cell = truncateString(cell, width)
		}
		builder.WriteString(" ")
		builder.WriteString(cell)
		if i < len(widths)-1 {
			builder.WriteString(strings.Repeat(" ", max(0, width-lipgloss.Width(cell))+1))
		}
	}
	return strings.TrimRight(builder.String(), " ")
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if lipgloss.Width(str) <= maxLen || len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return string(runes[len(runes)-maxLen:])
	}
	return ellipsis + string(runes[len(runes)-maxLen+len(ellipsis):])
}

// Location formats a 1-based line and column.
func Location(line, column int) string {
	return fmt.Sprintf("%d:%d", line, column)
}
