// Package runner provides multi-file orchestration: discovery, a worker
// pool that parses and indexes notes, optional canonical rewriting and a
// watch loop that keeps the index current.
package runner

import "github.com/yaklabco/notemark/pkg/config"

// Mode selects what the runner does with each file.
type Mode int

const (
	// ModeIndex parses files and collects their references.
	ModeIndex Mode = iota

	// ModeFormat additionally computes the canonical source of each file.
	ModeFormat
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFormat {
		return "format"
	}
	return "index"
}

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of note file extensions (with leading dot).
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are doublestar patterns used to skip files or directories.
	// A pattern without '/' also matches against the base name.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Mode selects indexing or formatting.
	Mode Mode

	// Write makes ModeFormat rewrite changed files in place.
	Write bool
}

// OptionsFromConfig fills the config-derived fields of Options.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		Extensions:   cfg.NoteExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Write:        cfg.Write,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
