package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/pkg/config"
)

// constructFlags select which constructs a command recognizes.
type constructFlags struct {
	flavor    string
	pathStyle bool
	disable   []string
}

func addConstructFlags(cmd *cobra.Command, flags *constructFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.pathStyle, "path-style", false, "allow '/' inside tag names (#area/topic)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "constructs to turn off: wikilinks, tags, embeds")
}

// apply copies the explicitly set construct flags into cfg.
func (f *constructFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if cmd.Flags().Changed("path-style") {
		cfg.Tags.PathStyle = f.pathStyle
	}

	for _, name := range f.disable {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "wikilinks", "wikilink":
			cfg.Constructs.Wikilinks = config.Bool(false)
		case "tags", "tag":
			cfg.Constructs.Tags = config.Bool(false)
		case "embeds", "embed":
			cfg.Constructs.Embeds = config.Bool(false)
		default:
			return fmt.Errorf("%w: unknown construct %q; valid: wikilinks, tags, embeds", ErrInvalidUsage, name)
		}
	}
	return nil
}
