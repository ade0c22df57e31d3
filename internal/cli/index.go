package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/reporter"
	"github.com/yaklabco/notemark/pkg/runner"
)

// ErrUnresolvedLinks is returned by index --strict when links point at no note.
var ErrUnresolvedLinks = errors.New("unresolved links found")

type indexFlags struct {
	run      runFlags
	refs     bool
	tags     bool
	strict   bool
	watch    bool
	debounce time.Duration
}

func newIndexCommand(global *globalFlags) *cobra.Command {
	flags := &indexFlags{}

	cmd := &cobra.Command{
		Use:   "index [paths...]",
		Short: "Index the links, tags and embeds of a note collection",
		Long: `Index a collection of notes into a link graph.

Links resolve to notes by file name without extension, ignoring case.
Reports unresolved links by default; --refs lists every reference and
--tags lists tag counts. With --watch the index stays current as notes
change until interrupted.`,
		Example: `  notemark index                     # Report unresolved links
  notemark index --refs --tags       # Full listing
  notemark index --format json       # Machine-readable graph
  notemark index --strict            # Fail on unresolved links
  notemark index --watch notes/      # Re-index as notes change`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args, global, flags)
		},
	}

	addRunFlags(cmd, &flags.run, "text, table, json")
	cmd.Flags().BoolVar(&flags.refs, "refs", false, "list every reference, not only unresolved links")
	cmd.Flags().BoolVar(&flags.tags, "tags", false, "list tag counts")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when links are unresolved")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "keep indexing as files change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", runner.DefaultDebounce, "quiet period before re-indexing in watch mode")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string, global *globalFlags, flags *indexFlags) error {
	cliCfg, err := flags.run.cliConfig(cmd)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd, global, cliCfg)
	if err != nil {
		return err
	}

	rep, err := sess.newReporter(cmd, global, reporter.Options{
		ShowSummary: true,
		ShowRefs:    flags.refs,
		ShowTags:    flags.tags,
		Compact:     flags.run.compact,
	})
	if err != nil {
		return err
	}

	if flags.watch {
		return sess.watch(args, flags.debounce, rep)
	}

	result, err := sess.run(args, runner.ModeIndex)
	if err != nil {
		return err
	}

	unresolved, err := rep.Report(sess.ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrFilesFailed
	}
	if flags.strict && unresolved > 0 {
		return ErrUnresolvedLinks
	}
	return nil
}

// watch reports the index after the initial pass and after every change.
func (s *session) watch(paths []string, debounce time.Duration, rep reporter.Reporter) error {
	parser, err := s.parser()
	if err != nil {
		return err
	}

	logger := logging.FromContext(s.ctx)
	logger.Info("watching for changes", logging.FieldWorkingDir, s.workDir)

	err = runner.New(parser).Watch(s.ctx, s.runnerOptions(paths, runner.ModeIndex), debounce,
		func(result *runner.Result, changed []string) {
			if len(changed) > 0 {
				logger.Info("index updated",
					logging.FieldFilesChanged, len(changed),
					logging.FieldUnresolved, len(result.Graph.Unresolved()))
			}
			if _, err := rep.Report(s.ctx, result); err != nil {
				logger.Error("report failed", logging.FieldError, err)
			}
		})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
