package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tradiff/internal/charset"
	"tradiff/internal/diag"
	"tradiff/internal/diagfmt"
	"tradiff/internal/driver"
	"tradiff/internal/observ"
)

func addCompareFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("charset", "c", charset.Default, "charset of both files (WHATWG label)")
	flags.String("charset1", "", "charset of the first file")
	flags.String("charset2", "", "charset of the second file")
	flags.String("format", "pretty", "output format (pretty|json)")
	flags.Bool("cache", false, "reuse parses of unchanged files from the on-disk cache")
	flags.String("ui", "auto", "progress UI (auto|on|off)")

	cmd.MarkFlagsRequiredTogether("charset1", "charset2")
	cmd.MarkFlagsMutuallyExclusive("charset", "charset1")
	cmd.MarkFlagsMutuallyExclusive("charset", "charset2")
}

// resolveCharsets returns the labels of the first and second file.
func resolveCharsets(cmd *cobra.Command, s *settings) ([2]string, error) {
	flags := cmd.Flags()
	var labels [2]string
	if flags.Changed("charset1") || flags.Changed("charset2") {
		first, err := flags.GetString("charset1")
		if err != nil {
			return labels, err
		}
		second, err := flags.GetString("charset2")
		if err != nil {
			return labels, err
		}
		labels = [2]string{first, second}
	} else {
		label := s.cfg.Input.Charset
		if flags.Changed("charset") {
			var err error
			if label, err = flags.GetString("charset"); err != nil {
				return labels, err
			}
		}
		labels = [2]string{label, label}
	}
	for _, label := range labels {
		if err := charset.Validate(label); err != nil {
			return labels, err
		}
	}
	return labels, nil
}

func openCache(cmd *cobra.Command, s *settings) *driver.DiskCache {
	enabled := s.cfg.Cache.Enabled
	if cmd.Flags().Changed("cache") {
		enabled, _ = cmd.Flags().GetBool("cache")
	}
	if !enabled {
		return nil
	}
	dir, err := s.cfg.CacheDir()
	if err != nil {
		log.Warn().Err(err).Msg("parse cache disabled")
		return nil
	}
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("parse cache disabled")
		return nil
	}
	log.Debug().Str("dir", dir).Msg("parse cache enabled")
	return cache
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}
	format, err := s.outputFormat(cmd)
	if err != nil {
		return err
	}
	charsets, err := resolveCharsets(cmd, s)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Charsets:       charsets,
		MaxDiagnostics: s.maxDiagnostics,
		Cache:          openCache(cmd, s),
	}
	if s.timings {
		opts.Timer = observ.NewTimer()
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	ctx := cmd.Context()
	var res *driver.CompareResult
	if format == "pretty" && !s.quiet && shouldUseTUI(mode, stdout) {
		res, err = runCompareWithUI(ctx, args, opts, stdout)
	} else {
		res, err = driver.Compare(ctx, args[0], args[1], opts)
	}

	if fe, ok := driver.IsFatal(err); ok {
		reportFatal(stdout, stderr, fe, res, format, s)
		printTimings(stderr, opts.Timer)
		return errReported
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("comparison interrupted: %w", err)
		}
		return err
	}

	if format == "json" {
		out := diagfmt.ReportOutput{
			First:  args[0],
			Second: args[1],
			Report: res.Report,
		}
		diags := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, jsonOpts(s))
		out.Diagnostics = &diags
		if err := diagfmt.FormatReportJSON(stdout, out); err != nil {
			return err
		}
		printTimings(stderr, opts.Timer)
		return nil
	}

	for _, r := range []*driver.FileResult{res.First, res.Second} {
		printFileDiagnostics(stderr, r, res, s)
	}
	width := diagfmt.DefaultWidth
	if isTerminal(stdout) {
		width = diagfmt.TerminalWidth()
	}
	err = diagfmt.FormatReportPretty(stdout, res.Report, diagfmt.ReportOpts{
		Color:      s.useColor(stdout),
		Width:      width,
		FirstPath:  args[0],
		SecondPath: args[1],
	})
	printTimings(stderr, opts.Timer)
	return err
}

// printFileDiagnostics lists the recoverable errors of one file under a
// header. Duplicate warnings are left to the report; other warnings are
// dropped with --quiet.
func printFileDiagnostics(w io.Writer, r *driver.FileResult, res *driver.CompareResult, s *settings) {
	var errs, warns []diag.Diagnostic
	for _, d := range r.Bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs = append(errs, d)
		case d.Code == diag.CmpDuplicateEntry:
		case !s.quiet:
			warns = append(warns, d)
		}
	}
	opts := prettyOpts(s, w)
	diagfmt.PrettyList(w, warns, res.FileSet, opts)
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, diagfmt.RecoveredHeader(r.Which, r.Path, opts.Color))
	diagfmt.PrettyList(w, errs, res.FileSet, opts)
	if dropped := r.Bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "  ... %d more diagnostics not shown\n", dropped)
	}
}

func reportFatal(stdout, stderr io.Writer, fe *driver.FatalError, res *driver.CompareResult, format string, s *settings) {
	colored := s.useColor(stderr)
	fmt.Fprintln(stderr, diagfmt.FatalMessage(fe.Which, fe.Path, fe.Err, colored))
	if res == nil {
		return
	}
	if format == "json" {
		if err := diagfmt.JSON(stdout, res.Bag, res.FileSet, jsonOpts(s)); err != nil {
			log.Error().Err(err).Msg("failed to write diagnostics")
		}
		return
	}
	diagfmt.Pretty(stderr, res.Bag, res.FileSet, prettyOpts(s, stderr))
}

func prettyOpts(s *settings, w io.Writer) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.useColor(w),
		Context:   2,
		ShowNotes: true,
	}
}

func jsonOpts(s *settings) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		Max:              s.maxDiagnostics,
		IncludeNotes:     true,
	}
}
