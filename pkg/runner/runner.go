package runner

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/fsutil"
	"github.com/yaklabco/notemark/pkg/index"
	"github.com/yaklabco/notemark/pkg/parser/goldmark"
	"github.com/yaklabco/notemark/pkg/render"
)

// Runner orchestrates multi-file processing with a goldmark parser.
type Runner struct {
	// Parser turns file content into snapshots. It is safe for concurrent use.
	Parser *goldmark.Parser
}

// New creates a new Runner with the given parser.
func New(parser *goldmark.Parser) *Runner {
	return &Runner{Parser: parser}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldWorkingDir, workDir)

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Graph: index.NewGraph(opts.effectiveExtensions()),
		Mode:  opts.Mode,
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile parses and indexes one file and, in ModeFormat, computes its
// canonical source and rewrites it when opts.Write is set.
// opts.WorkingDir must already be absolute.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path, RelPath: relativeTo(opts.WorkingDir, path)}
	logger := logging.ForFile(ctx, outcome.RelPath)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	snapshot, err := r.Parser.Parse(ctx, outcome.RelPath, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.File = index.FromSnapshot(snapshot)

	logger.Debug("indexed", logging.FieldTokens, len(snapshot.Tokens))

	if opts.Mode != ModeFormat {
		return outcome
	}

	outcome.Source = content
	outcome.Canonical = render.Canonicalize(snapshot.Content, snapshot.Root)
	outcome.Changed = !bytes.Equal(outcome.Canonical, content)

	if outcome.Changed && opts.Write {
		written, err := fsutil.Replace(ctx, info, outcome.Canonical)
		if err != nil {
			outcome.Error = fmt.Errorf("rewrite %s: %w", outcome.RelPath, err)
			return outcome
		}
		outcome.Written = written
		if written {
			logger.Info("formatted")
		}
	}

	return outcome
}
