package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/notemark/internal/configloader"
	"github.com/yaklabco/notemark/internal/logging"
	"github.com/yaklabco/notemark/pkg/config"
	goldmarkparser "github.com/yaklabco/notemark/pkg/parser/goldmark"
	"github.com/yaklabco/notemark/pkg/pipeline"
	"github.com/yaklabco/notemark/pkg/render"
	"github.com/yaklabco/notemark/pkg/runner"
)

// ErrConfig marks configuration errors so they map to ExitConfigError.
var ErrConfig = errors.New("failed to load configuration")

// session is the resolved state a command runs with.
type session struct {
	ctx     context.Context
	workDir string
	config  *config.Config

	// sources lists the config files that were loaded, lowest precedence first.
	sources []string
}

// newSession resolves the working directory and loads the configuration,
// with cliCfg taking precedence over every other source.
func newSession(cmd *cobra.Command, flags *globalFlags, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := resolveWorkDir(flags.chdir)
	if err != nil {
		return nil, err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        flags.config,
		IgnoreSystemConfig:  flags.noConfig,
		IgnoreUserConfig:    flags.noConfig,
		IgnoreProjectConfig: flags.noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldWikilinks, cfg.WikilinksEnabled(),
		logging.FieldTags, cfg.TagsEnabled(),
		logging.FieldEmbeds, cfg.EmbedsEnabled(),
		logging.FieldPathStyle, cfg.TagPathStyle(),
	)

	return &session{ctx: ctx, workDir: workDir, config: cfg, sources: loadResult.LoadedFrom}, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return workDir, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("change directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("change directory: %s is not a directory", dir)
	}
	return abs, nil
}

// parser builds the goldmark parser with the configured constructs.
func (s *session) parser(htmlOpts ...render.HTMLOption) (*goldmarkparser.Parser, error) {
	pipe, err := pipeline.FromConfig(s.config)
	if err != nil {
		return nil, fmt.Errorf("build construct pipeline: %w", err)
	}
	return goldmarkparser.New(string(s.config.Flavor), pipe, htmlOpts...), nil
}

// runnerOptions builds runner options for the given paths.
func (s *session) runnerOptions(paths []string, mode runner.Mode) runner.Options {
	opts := runner.OptionsFromConfig(s.config, paths)
	opts.WorkingDir = s.workDir
	opts.Mode = mode
	return opts
}

// resolvePath makes a user-supplied path absolute against the working directory.
func (s *session) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.workDir, path)
}
