package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/configloader"
	"github.com/yaklabco/notemark/internal/ui/pretty"
)

type configFlags struct {
	env bool
}

func newConfigCommand(global *globalFlags) *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration notemark would run with, after merging the
system, user, project and explicit config files with environment variables.
The files that were loaded are listed as comments.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables instead")

	return cmd
}

func runConfig(cmd *cobra.Command, global *globalFlags, flags *configFlags) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, out))

	if flags.env {
		vars := configloader.ListEnvVars()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s  %s\n", styles.Bold.Render(fmt.Sprintf("%-26s", name)), vars[name])
		}
		return nil
	}

	sess, err := newSession(cmd, global, nil)
	if err != nil {
		return err
	}

	body, err := sess.config.ToYAML()
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	if len(sess.sources) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("# no config files loaded; showing defaults"))
	}
	for _, path := range sess.sources {
		fmt.Fprintln(out, styles.Dim.Render("# loaded from "+path))
	}
	_, err = out.Write(body)
	return err
}
