package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/config"
	"github.com/yaklabco/notemark/pkg/reporter"
	"github.com/yaklabco/notemark/pkg/runner"
)

// runFlags are shared by the commands that walk a note collection.
type runFlags struct {
	constructs constructFlags
	format     string
	jobs       int
	ignore     []string
	compact    bool
}

func addRunFlags(cmd *cobra.Command, flags *runFlags, formats string) {
	addConstructFlags(cmd, &flags.constructs)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+formats)
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

// cliConfig maps the explicitly set flags to a config layer.
func (f *runFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if err := f.constructs.apply(cmd, cfg); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	cfg.Ignore = f.ignore
	return cfg, nil
}

// newReporter creates the reporter for the configured output format.
func (s *session) newReporter(cmd *cobra.Command, global *globalFlags, opts reporter.Options) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(s.config.Format))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	opts.Writer = cmd.OutOrStdout()
	opts.Format = format
	opts.Color = global.color

	rep, err := reporter.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// run processes the collection once.
func (s *session) run(paths []string, mode runner.Mode) (*runner.Result, error) {
	parser, err := s.parser()
	if err != nil {
		return nil, err
	}

	opts := s.runnerOptions(paths, mode)
	logging.FromContext(s.ctx).Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldWrite, opts.Write,
	)

	result, err := runner.New(parser).Run(s.ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}
	return result, nil
}
