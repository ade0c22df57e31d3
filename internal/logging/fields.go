// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor    = "flavor"
	FieldPathStyle = "path_style"
	FieldJobs      = "jobs"
	FieldWrite     = "write"

	// Construct fields.
	FieldConstructs = "constructs"
	FieldWikilinks  = "wikilinks"
	FieldTags       = "tags"
	FieldEmbeds     = "embeds"
	FieldTokens     = "tokens"
	FieldTarget     = "target"
	FieldKind       = "kind"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldUnresolved      = "unresolved"
	FieldDuration        = "duration"

	// Watch fields.
	FieldEvent = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
