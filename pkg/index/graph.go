package index

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/yaklabco/notemark/pkg/mdast"
)

// Graph aggregates the files of a note collection. It is safe for
// concurrent use, so workers can add files as they finish.
type Graph struct {
	mu         sync.RWMutex
	files      map[string]*File
	extensions []string
}

// TagCount is a tag with the number of occurrences across the collection.
// Tags that differ only by case or Unicode normalization share one entry.
type TagCount struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// Unresolved is a link whose target matches no note in the collection.
type Unresolved struct {
	Path string `json:"path"`
	Ref  Ref    `json:"ref"`
}

// Summary holds collection totals.
type Summary struct {
	Files      int `json:"files"`
	Wikilinks  int `json:"wikilinks"`
	Tags       int `json:"tags"`
	Embeds     int `json:"embeds"`
	Unresolved int `json:"unresolved"`
}

// Report is a point-in-time view of the whole graph.
type Report struct {
	Files      []*File             `json:"files"`
	Tags       []TagCount          `json:"tags"`
	Backlinks  map[string][]string `json:"backlinks"`
	Unresolved []Unresolved        `json:"unresolved"`
	Summary    Summary             `json:"summary"`
}

// NewGraph returns an empty graph. The extensions are stripped from file
// paths and link IDs when matching links to notes.
func NewGraph(extensions []string) *Graph {
	return &Graph{
		files:      make(map[string]*File),
		extensions: extensions,
	}
}

// Add inserts or replaces a file.
func (g *Graph) Add(file *File) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.files[file.Path] = file
}

// Remove drops a file. It reports whether the file was present.
func (g *Graph) Remove(filePath string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.files[filePath]
	delete(g.files, filePath)
	return ok
}

// Len returns the number of files.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.files)
}

// Files returns the files sorted by path.
func (g *Graph) Files() []*File {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sortedFiles()
}

// Outgoing returns the distinct link targets of a file, in first-use order.
func (g *Graph) Outgoing(filePath string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	file, ok := g.files[filePath]
	if !ok {
		return nil
	}

	var targets []string
	seen := make(map[string]bool)
	for _, ref := range file.Refs {
		if !ref.IsLink() || seen[ref.Target] {
			continue
		}
		seen[ref.Target] = true
		targets = append(targets, ref.Target)
	}
	return targets
}

// Backlinks returns the files linking to the note at filePath.
func (g *Graph) Backlinks(filePath string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.backlinks()[filePath]
}

// Tags returns tag counts, most used first.
func (g *Graph) Tags() []TagCount {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tags()
}

// Unresolved returns links that match no note, sorted by path and position.
func (g *Graph) Unresolved() []Unresolved {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unresolved()
}

// Report builds a full snapshot of the graph.
func (g *Graph) Report() *Report {
	g.mu.RLock()
	defer g.mu.RUnlock()

	report := &Report{
		Files:      g.sortedFiles(),
		Tags:       g.tags(),
		Backlinks:  g.backlinks(),
		Unresolved: g.unresolved(),
	}

	report.Summary.Files = len(report.Files)
	for _, file := range report.Files {
		report.Summary.Wikilinks += file.Count(mdast.ConstructWikilink)
		report.Summary.Tags += file.Count(mdast.ConstructTag)
		report.Summary.Embeds += file.Count(mdast.ConstructEmbed)
	}
	report.Summary.Unresolved = len(report.Unresolved)

	return report
}

// FoldKey returns the comparison key for tag names and note IDs:
// NFC-normalized and Unicode case-folded.
func FoldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func (g *Graph) sortedFiles() []*File {
	files := make([]*File, 0, len(g.files))
	for _, file := range g.files {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// noteKeys maps the stem key of every note to the note paths carrying it.
func (g *Graph) noteKeys() map[string][]string {
	keys := make(map[string][]string, len(g.files))
	for _, file := range g.sortedFiles() {
		key := g.stemKey(path.Base(filepath.ToSlash(file.Path)))
		keys[key] = append(keys[key], file.Path)
	}
	return keys
}

// stemKey strips a note extension and folds the rest.
func (g *Graph) stemKey(name string) string {
	name = strings.TrimSpace(name)
	ext := path.Ext(name)
	for _, noteExt := range g.extensions {
		if strings.EqualFold(ext, noteExt) {
			name = strings.TrimSuffix(name, ext)
			break
		}
	}
	return FoldKey(name)
}

// resolve returns the notes a link target points at, or nil.
func (g *Graph) resolve(keys map[string][]string, target string) []string {
	return keys[g.stemKey(target)]
}

func (g *Graph) backlinks() map[string][]string {
	keys := g.noteKeys()
	sets := make(map[string]map[string]bool)

	for _, file := range g.files {
		for _, ref := range file.Refs {
			if !ref.IsLink() {
				continue
			}
			for _, note := range g.resolve(keys, ref.Target) {
				if note == file.Path {
					continue
				}
				if sets[note] == nil {
					sets[note] = make(map[string]bool)
				}
				sets[note][file.Path] = true
			}
		}
	}

	result := make(map[string][]string, len(sets))
	for note, set := range sets {
		sources := make([]string, 0, len(set))
		for source := range set {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		result[note] = sources
	}
	return result
}

func (g *Graph) tags() []TagCount {
	type entry struct {
		name  string
		count int
		files map[string]bool
	}
	entries := make(map[string]*entry)

	for _, file := range g.files {
		for _, ref := range file.Refs {
			if ref.Kind != mdast.ConstructTag.String() {
				continue
			}
			key := FoldKey(ref.Target)
			e, ok := entries[key]
			if !ok {
				e = &entry{name: ref.Target, files: make(map[string]bool)}
				entries[key] = e
			}
			// Lowest spelling wins so output does not depend on map order.
			if ref.Target < e.name {
				e.name = ref.Target
			}
			e.count++
			e.files[file.Path] = true
		}
	}

	result := make([]TagCount, 0, len(entries))
	for _, e := range entries {
		files := make([]string, 0, len(e.files))
		for f := range e.files {
			files = append(files, f)
		}
		sort.Strings(files)
		result = append(result, TagCount{Name: e.name, Count: e.count, Files: files})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func (g *Graph) unresolved() []Unresolved {
	keys := g.noteKeys()
	var result []Unresolved

	for _, file := range g.sortedFiles() {
		for _, ref := range file.Refs {
			if ref.IsLink() && len(g.resolve(keys, ref.Target)) == 0 {
				result = append(result, Unresolved{Path: file.Path, Ref: ref})
			}
		}
	}
	return result
}
