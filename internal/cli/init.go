package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/config"
	"github.com/yaklabco/notemark/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the project config file name written by init.
const defaultConfigFile = ".notemark.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand(global *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new notemark configuration file",
		Long: `Create a new .notemark.yml configuration file in the current directory
with sensible defaults. The file can be customized to change the Markdown
flavor, turn constructs off, allow path-style tags and ignore files.`,
		Example: `  notemark init                      Create minimal .notemark.yml
  notemark init --full               Write every setting with its default
  notemark init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .notemark.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, global *globalFlags, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	workDir, err := resolveWorkDir(global.chdir)
	if err != nil {
		return err
	}
	sess := &session{ctx: cmd.Context(), workDir: workDir}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}
	absPath := sess.resolvePath(outputPath)

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(sess.ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'notemark config' to see the effective configuration")

	return nil
}
