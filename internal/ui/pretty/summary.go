package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/notemark/pkg/index"
)

const summaryDividerWidth = 40

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatSummaryOneLine formats index totals as a single line.
// Example: "12 wikilinks, 5 tags, 2 embeds in 3 files, 1 unresolved".
func (s *Styles) FormatSummaryOneLine(summary index.Summary) string {
	line := fmt.Sprintf("%s, %s, %s in %s",
		s.Wikilink.Render(fmt.Sprintf("%d %s", summary.Wikilinks, plural(summary.Wikilinks, "wikilink"))),
		s.Tag.Render(fmt.Sprintf("%d %s", summary.Tags, plural(summary.Tags, "tag"))),
		s.Embed.Render(fmt.Sprintf("%d %s", summary.Embeds, plural(summary.Embeds, "embed"))),
		fmt.Sprintf("%d %s", summary.Files, plural(summary.Files, "file")),
	)

	if summary.Unresolved > 0 {
		line += ", " + s.Unresolved.Render(fmt.Sprintf("%d unresolved", summary.Unresolved))
	}
	return line + "\n"
}

// FormatSummary formats index totals as a summary block.
func (s *Styles) FormatSummary(summary index.Summary, tags int) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files indexed", s.SummaryValue.Render(strconv.Itoa(summary.Files)))
	row("Wikilinks", s.Wikilink.Render(strconv.Itoa(summary.Wikilinks)))
	row("Tags", s.Tag.Render(fmt.Sprintf("%d (%d distinct)", summary.Tags, tags)))
	row("Embeds", s.Embed.Render(strconv.Itoa(summary.Embeds)))

	builder.WriteString("\n")
	if summary.Unresolved > 0 {
		builder.WriteString(s.Failure.Render(fmt.Sprintf("%d unresolved %s",
			summary.Unresolved, plural(summary.Unresolved, "link"))))
	} else {
		builder.WriteString(s.Success.Render("All links resolved"))
	}
	builder.WriteString("\n")

	return builder.String()
}
