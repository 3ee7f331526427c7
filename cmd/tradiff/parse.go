package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradiff/internal/charset"
	"tradiff/internal/diagfmt"
	"tradiff/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.tra>",
		Short: "Print the fragments of a TRA file",
		Long:  `Parse reads a TRA file into comments and entries and reports the syntax errors it recovered from`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().StringP("charset", "c", charset.Default, "charset of the file (WHATWG label)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}
	format, err := s.outputFormat(cmd)
	if err != nil {
		return err
	}
	label, err := inputCharset(cmd, s)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], label, s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	if result.Bag.HasErrors() || (result.Bag.HasWarnings() && !s.quiet) {
		diagfmt.Pretty(stderr, result.Bag, result.FileSet, prettyOpts(s, stderr))
	}
	if result.Fatal != nil {
		return errReported
	}

	switch format {
	case "json":
		return diagfmt.FormatFragmentsJSON(cmd.OutOrStdout(), result.Fragments)
	default:
		return diagfmt.FormatFragmentsPretty(cmd.OutOrStdout(), result.Fragments, result.FileSet, args[0])
	}
}
