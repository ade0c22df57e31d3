package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/config"
	"github.com/yaklabco/notemark/pkg/fsutil"
	"github.com/yaklabco/notemark/pkg/pipeline"
	"github.com/yaklabco/notemark/pkg/render"
)

// outputFilePermissions is the file mode for rendered HTML files.
const outputFilePermissions = 0o644

type renderFlags struct {
	constructs constructFlags
	output     string
	inline     bool
	anchors    bool
	suffix     string
}

func newRenderCommand(global *globalFlags) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a note to HTML",
		Long: `Render a Markdown note to HTML, including its wikilinks, tags and embeds.

Reads the file named on the command line, or standard input when the file is
omitted or "-". By default constructs render as <wikilink>, <tag> and <embed>
elements for a host application to style; --anchors renders links as <a>,
image embeds as <img> and tags as <span>.`,
		Example: `  notemark render note.md
  notemark render --anchors --suffix .html note.md -o note.html
  echo 'Meet [[alice|Alice]] #team' | notemark render --inline`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, global, flags)
		},
	}

	addConstructFlags(cmd, &flags.constructs)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.inline, "inline", false, "treat input as a single line of text without block structure")
	cmd.Flags().BoolVar(&flags.anchors, "anchors", false, "render browser-ready anchors, images and spans")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "suffix appended to link targets with --anchors")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, global *globalFlags, flags *renderFlags) error {
	cliCfg := &config.Config{}
	if err := flags.constructs.apply(cmd, cliCfg); err != nil {
		return err
	}

	sess, err := newSession(cmd, global, cliCfg)
	if err != nil {
		return err
	}

	name, content, err := sess.readInput(cmd, args)
	if err != nil {
		return err
	}

	var htmlOpts []render.HTMLOption
	if flags.anchors {
		htmlOpts = append(htmlOpts, render.WithAnchors(flags.suffix))
	}

	var buf bytes.Buffer
	if flags.inline {
		pipe, err := pipeline.FromConfig(sess.config)
		if err != nil {
			return fmt.Errorf("build construct pipeline: %w", err)
		}
		line := bytes.TrimRight(content, "\r\n")
		if err := pipe.RenderInline(&buf, line, htmlOpts...); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		buf.WriteByte('\n')
	} else {
		parser, err := sess.parser(htmlOpts...)
		if err != nil {
			return err
		}
		snapshot, err := parser.Parse(sess.ctx, name, content)
		if err != nil {
			return err
		}
		logging.ForFile(sess.ctx, name).Debug("parsed", logging.FieldTokens, len(snapshot.Tokens))
		if err := parser.Render(&buf, snapshot); err != nil {
			return err
		}
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	outPath := sess.resolvePath(flags.output)
	if err := fsutil.WriteAtomic(sess.ctx, outPath, buf.Bytes(), outputFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	logging.FromContext(sess.ctx).Info("rendered", logging.FieldPath, name, logging.FieldOutput, flags.output)
	return nil
}

// readInput reads the named file, or stdin when no file or "-" is given.
func (s *session) readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", content, nil
	}

	content, _, err := fsutil.ReadFile(s.ctx, s.resolvePath(args[0]))
	if err != nil {
		return "", nil, err
	}
	return args[0], content, nil
}
