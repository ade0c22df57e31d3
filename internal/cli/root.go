// Package cli provides the Cobra command structure for notemark.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug    bool
	config   string
	color    string
	chdir    string
	noConfig bool
}

// NewRootCommand creates the root notemark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "notemark",
		Short: "Wikilinks, tags and embeds for Markdown notes",
		Long: `notemark extends Markdown with the constructs of a personal knowledge base:
[[id]] and [[id|text]] wikilinks, #name tags and ![[id]] embeds.

It renders notes to HTML, rewrites construct syntax into canonical form, and
indexes a collection of notes into a link graph with backlinks, tag counts
and unresolved links.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if flags.debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&flags.chdir, "chdir", "C", "",
		"run as if notemark was started in this directory")
	rootCmd.PersistentFlags().BoolVar(&flags.noConfig, "no-config", false,
		"ignore system, user and project config files")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newFmtCommand(flags))
	rootCmd.AddCommand(newIndexCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newInitCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs marks argument validation errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return nil
	}
}
