// Package langdetect classifies embed targets by file name.
// It uses go-enry's extension and vendor tables, so an embed such as
// ![[diagram.svg]] or ![[main.go]] can be rendered and indexed by kind.
package langdetect

import (
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind is the broad category of an embed target.
type Kind string

// Target kinds.
const (
	KindNote     Kind = "note"
	KindImage    Kind = "image"
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindCode     Kind = "code"
	KindData     Kind = "data"
	KindOther    Kind = "other"
)

// Target describes a classified embed target.
type Target struct {
	// Kind is the target category.
	Kind Kind `json:"kind"`

	// Language is the lowercase linguist language for code, data and
	// markup targets, e.g. "go" or "yaml". Empty otherwise.
	Language string `json:"language,omitempty"`

	// Vendored reports whether the path looks like third-party content.
	Vendored bool `json:"vendored,omitempty"`
}

// Extensions not covered by linguist's language tables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var mediaKinds = map[string]Kind{
	".svg":  KindImage,
	".webp": KindImage,
	".mp3":  KindAudio,
	".wav":  KindAudio,
	".ogg":  KindAudio,
	".flac": KindAudio,
	".m4a":  KindAudio,
	".mp4":  KindVideo,
	".webm": KindVideo,
	".mov":  KindVideo,
	".mkv":  KindVideo,
	".pdf":  KindDocument,
}

// noteExtensions are the file extensions treated as notes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var noteExtensions = map[string]bool{
	"":          true,
	".md":       true,
	".markdown": true,
}

// Classify returns the kind of an embed target from its name.
// A target without an extension is a note, as is any Markdown file.
func Classify(target string) Target {
	name := strings.TrimSpace(target)
	ext := strings.ToLower(path.Ext(name))
	result := Target{Vendored: enry.IsVendor(name)}

	switch {
	case noteExtensions[ext]:
		result.Kind = KindNote
		return result
	case enry.IsImage(strings.ToLower(name)):
		result.Kind = KindImage
		return result
	}

	if kind, ok := mediaKinds[ext]; ok {
		result.Kind = kind
		return result
	}

	lang, _ := enry.GetLanguageByExtension(name)
	if lang == "" {
		result.Kind = KindOther
		return result
	}

	result.Language = normalize(lang)
	switch enry.GetLanguageType(lang) {
	case enry.Programming:
		result.Kind = KindCode
	case enry.Data:
		result.Kind = KindData
	case enry.Markup, enry.Prose:
		result.Kind = KindDocument
	default:
		result.Kind = KindOther
	}

	return result
}

// IsImage reports whether target names an image file.
func IsImage(target string) bool {
	return Classify(target).Kind == KindImage
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
