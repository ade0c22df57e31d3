package cli

import (
	"errors"

	"github.com/yaklabco/notemark/internal/configloader"
	"github.com/yaklabco/notemark/pkg/fsutil"
)

// ErrInvalidUsage marks errors caused by bad arguments or flags.
var ErrInvalidUsage = errors.New("invalid usage")

// Exit codes for notemark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFindings indicates the command ran but found what --strict or
	// --check asked it to fail on.
	ExitFindings = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnresolvedLinks), errors.Is(err, ErrUnformattedFiles):
		return ExitFindings
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsFindings reports whether err only signals findings that were already
// reported, so it needs no further logging.
func IsFindings(err error) bool {
	return errors.Is(err, ErrUnresolvedLinks) || errors.Is(err, ErrUnformattedFiles)
}
