package runner

import (
	"github.com/yaklabco/notemark/pkg/index"
	"github.com/yaklabco/notemark/pkg/mdast"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// RelPath is Path relative to the working directory, with forward
	// slashes. It keys the file in the index graph.
	RelPath string

	// File holds the extracted references. Nil when Error is set.
	File *index.File

	// Source is the content that was read. Only set in ModeFormat.
	Source []byte

	// Canonical is the canonical source. Only set in ModeFormat.
	Canonical []byte

	// Changed reports whether Canonical differs from the file content.
	Changed bool

	// Written reports whether the file was rewritten.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesChanged    int
	FilesWritten    int

	Wikilinks int
	Tags      int
	Embeds    int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Graph aggregates the references of every processed file.
	Graph *index.Graph

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Mode is the mode the run was made in.
	Mode Mode
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file is not in canonical form.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// Changed returns the outcomes whose canonical source differs.
func (r *Result) Changed() []FileOutcome {
	var changed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Changed {
			changed = append(changed, outcome)
		}
	}
	return changed
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}

	if outcome.File != nil {
		r.Graph.Add(outcome.File)
		r.Stats.Wikilinks += outcome.File.Count(mdast.ConstructWikilink)
		r.Stats.Tags += outcome.File.Count(mdast.ConstructTag)
		r.Stats.Embeds += outcome.File.Count(mdast.ConstructEmbed)
	}
}
