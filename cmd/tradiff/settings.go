package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradiff/internal/config"
	"tradiff/internal/prof"
)

// profiling is the session started by --cpu-profile, --mem-profile or
// --trace-profile; main stops it after the command returns.
var profiling *prof.Session

type settingsKey struct{}

// settings is the configuration after flags are applied over config.Load.
type settings struct {
	cfg            config.Config
	colorMode      string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

// setupCommand resolves settings once per invocation and configures logging
// and color output from them.
func setupCommand(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	lvl, err := s.cfg.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	color.NoColor = !s.useColor(cmd.OutOrStdout())

	if err := startProfiling(cmd); err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, s))
	return nil
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(config.LoadOptions{Path: configPath})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = flags.GetString("log-level"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{
		cfg:            cfg,
		colorMode:      strings.ToLower(cfg.Output.Color),
		maxDiagnostics: cfg.Output.MaxDiagnostics,
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	return s, nil
}

// settingsFrom returns the settings stored by setupCommand, resolving them
// again when the command was run without the root pre-run hook.
func settingsFrom(cmd *cobra.Command) (*settings, error) {
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok {
		return s, nil
	}
	return resolveSettings(cmd)
}

func (s *settings) useColor(w io.Writer) bool {
	switch s.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(w)
	}
}

// outputFormat returns the --format flag when given, otherwise the configured
// format.
func (s *settings) outputFormat(cmd *cobra.Command) (string, error) {
	format := s.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		var err error
		if format, err = cmd.Flags().GetString("format"); err != nil {
			return "", fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	format = strings.ToLower(format)
	if err := config.ValidateFormat(format); err != nil {
		return "", fmt.Errorf("--format: %w", err)
	}
	return format, nil
}

func startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	var err error
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return err
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return err
	}
	if opts.Trace, err = flags.GetString("trace-profile"); err != nil {
		return err
	}
	if !opts.Enabled() {
		return nil
	}
	profiling, err = prof.Start(opts)
	return err
}

func stopProfiling() error {
	err := profiling.Stop()
	profiling = nil
	return err
}
