package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/notemark/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reprocessing.
const DefaultDebounce = 100 * time.Millisecond

// WatchFunc receives the updated result after every settled batch of
// changes. changed lists the absolute paths reprocessed or removed.
type WatchFunc func(result *Result, changed []string)

// Watch runs an initial pass, then keeps the result current as note files
// change until ctx is cancelled. Files are reprocessed with the same
// options; deleted or renamed files leave the graph. onUpdate is called
// once for the initial pass and once per settled batch.
func (r *Runner) Watch(ctx context.Context, opts Options, debounce time.Duration, onUpdate WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	scope := watchScope{files: make(map[string]bool)}
	for _, root := range opts.effectivePaths() {
		if !filepath.IsAbs(root) {
			root = filepath.Join(workDir, root)
		}
		root = filepath.Clean(root)
		isDir, err := r.watchTree(watcher, root, opts)
		if err != nil {
			return err
		}
		if isDir {
			scope.dirs = append(scope.dirs, root)
		} else {
			scope.files[root] = true
		}
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		return err
	}
	onUpdate(result, nil)

	logger := logging.FromContext(ctx)
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("watch event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())

			if !scope.contains(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if _, err := r.watchTree(watcher, event.Name, opts); err != nil {
						logger.Warn("watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					continue
				}
			}

			if !r.relevant(event.Name, opts) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			clear(pending)

			r.apply(ctx, result, changed, opts)
			onUpdate(result, changed)
		}
	}
}

// apply reprocesses changed files and rebuilds the ordered outcome list.
func (r *Runner) apply(ctx context.Context, result *Result, changed []string, opts Options) {
	outcomes := make(map[string]FileOutcome, len(result.Files))
	for _, outcome := range result.Files {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range changed {
		rel := relativeTo(opts.WorkingDir, path)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			delete(outcomes, path)
			result.Graph.Remove(rel)
			continue
		}
		result.Graph.Remove(rel)
		outcomes[path] = r.ProcessFile(ctx, path, opts)
	}

	paths := make([]string, 0, len(outcomes))
	for path := range outcomes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	result.Files = make([]FileOutcome, 0, len(paths))
	result.Stats = Stats{}
	for _, path := range paths {
		result.accumulate(outcomes[path])
	}
	result.Stats.FilesDiscovered = len(result.Files)
}

// relevant reports whether a file event concerns a note the run would include.
func (r *Runner) relevant(path string, opts Options) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return matchesFile(path, opts.WorkingDir, opts.effectiveExtensions(), opts)
}

// watchScope holds the roots a watch was asked for. A file root is
// watched through its parent directory, so sibling files must be filtered.
type watchScope struct {
	dirs  []string
	files map[string]bool
}

// contains reports whether path is a requested file or lies under a
// requested directory.
func (s watchScope) contains(path string) bool {
	path = filepath.Clean(path)
	if s.files[path] {
		return true
	}
	for _, dir := range s.dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// watchTree adds root and its non-hidden, non-excluded subdirectories.
// A file root adds its parent directory. It reports whether root is a
// directory.
func (r *Runner) watchTree(watcher *fsnotify.Watcher, root string, opts Options) (bool, error) {
	info, err := os.Stat(root)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return false, watcher.Add(filepath.Dir(root))
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // Unreadable directories are not watched
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if path != root && matchesExcludePattern(relativeTo(opts.WorkingDir, path), opts.ExcludeGlobs) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return true, fmt.Errorf("watch %s: %w", root, err)
	}
	return true, nil
}
