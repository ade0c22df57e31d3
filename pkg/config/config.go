// Package config defines core configuration types for notemark.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// OutputFormat specifies the output format for index results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatDiff  OutputFormat = "diff"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// TagsConfig configures tag recognition.
type TagsConfig struct {
	// PathStyle admits '/' inside tag names (#area/topic).
	PathStyle bool `yaml:"path_style"`
}

// ConstructsConfig enables or disables individual constructs.
// A nil value means enabled.
type ConstructsConfig struct {
	Wikilinks *bool `yaml:"wikilinks,omitempty"`
	Tags      *bool `yaml:"tags,omitempty"`
	Embeds    *bool `yaml:"embeds,omitempty"`
}

// Config is the root configuration structure for notemark.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Tags configures tag recognition.
	Tags TagsConfig `yaml:"tags"`

	// Constructs enables or disables constructs.
	Constructs ConstructsConfig `yaml:"constructs"`

	// Extensions lists the file extensions treated as notes.
	Extensions []string `yaml:"extensions"`

	// Ignore contains doublestar glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Write makes fmt rewrite files in place.
	Write bool `yaml:"-"`
}

// DefaultExtensions are the note file extensions used when none are set.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorCommonMark,
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// WikilinksEnabled reports whether [[id]] links are recognized.
func (c *Config) WikilinksEnabled() bool { return enabled(c.Constructs.Wikilinks) }

// TagsEnabled reports whether #name tags are recognized.
func (c *Config) TagsEnabled() bool { return enabled(c.Constructs.Tags) }

// EmbedsEnabled reports whether ![[id]] embeds are recognized.
func (c *Config) EmbedsEnabled() bool { return enabled(c.Constructs.Embeds) }

// TagPathStyle reports whether tag names may contain '/'.
func (c *Config) TagPathStyle() bool { return c.Tags.PathStyle }

// NoteExtensions returns the configured extensions, or the defaults.
func (c *Config) NoteExtensions() []string {
	if len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}

func enabled(v *bool) bool {
	return v == nil || *v
}

// Bool returns a pointer to v, for ConstructsConfig fields.
func Bool(v bool) *bool {
	return &v
}
