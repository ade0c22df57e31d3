package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal commented template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
// The full template is the YAML of NewConfig under a header, so it always
// parses back with FromYAML.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if !opts.Full {
		return []byte(minimalTemplate), nil
	}

	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# All settings with their default values.\n\n")
	buf.Write(body)

	return buf.Bytes(), nil
}

const minimalTemplate = `# notemark configuration
# See: https://github.com/yaklabco/notemark

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Tag options
# tags:
#   # Allow hierarchical tags such as #area/topic
#   path_style: false

# Turn individual constructs off
# constructs:
#   wikilinks: true
#   tags: true
#   embeds: true

# File extensions treated as notes
# extensions:
#   - .md
#   - .markdown

# File patterns to ignore (doublestar glob patterns)
# ignore:
#   - "templates/**"
#   - "**/drafts/*.md"
`

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# notemark configuration
# See: https://github.com/yaklabco/notemark`
}
