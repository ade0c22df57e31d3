package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/reporter"
	"github.com/yaklabco/notemark/pkg/runner"
)

// ErrUnformattedFiles is returned by fmt --check when files are not canonical.
var ErrUnformattedFiles = errors.New("files are not in canonical form")

// ErrFilesFailed is returned when one or more files could not be processed.
var ErrFilesFailed = errors.New("some files could not be processed")

type fmtFlags struct {
	run   runFlags
	write bool
	check bool
}

func newFmtCommand(global *globalFlags) *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Rewrite construct syntax into canonical form",
		Long: `Rewrite wikilinks, tags and embeds into their canonical spelling.

[[id|id]] becomes [[id]] and reserved characters in ids and texts are
escaped consistently. Everything else in the file is left byte for byte.
Without --write, lists the files that would change.`,
		Example: `  notemark fmt                  # List notes that would change
  notemark fmt --format diff    # Show the changes as a unified diff
  notemark fmt --write          # Rewrite notes in place
  notemark fmt --check          # Fail if any note would change`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, global, flags)
		},
	}

	addRunFlags(cmd, &flags.run, "text, table, json, diff")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero if any file is not canonical")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, global *globalFlags, flags *fmtFlags) error {
	cliCfg, err := flags.run.cliConfig(cmd)
	if err != nil {
		return err
	}
	cliCfg.Write = flags.write

	sess, err := newSession(cmd, global, cliCfg)
	if err != nil {
		return err
	}

	result, err := sess.run(args, runner.ModeFormat)
	if err != nil {
		return err
	}

	rep, err := sess.newReporter(cmd, global, reporter.Options{
		ShowSummary: true,
		Compact:     flags.run.compact,
	})
	if err != nil {
		return err
	}
	if _, err := rep.Report(sess.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logging.FromContext(sess.ctx).Debug("format finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
	)

	if result.HasErrors() {
		return ErrFilesFailed
	}
	if flags.check && result.Stats.FilesChanged > result.Stats.FilesWritten {
		return ErrUnformattedFiles
	}
	return nil
}
