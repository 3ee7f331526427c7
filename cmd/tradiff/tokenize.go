package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradiff/internal/charset"
	"tradiff/internal/diagfmt"
	"tradiff/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.tra>",
		Short: "Print the tokens of a TRA file",
		Long:  `Tokenize breaks a TRA file into tokens and reports lexical errors without stopping`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().StringP("charset", "c", charset.Default, "charset of the file (WHATWG label)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

// inputCharset returns --charset when given, otherwise the configured one.
func inputCharset(cmd *cobra.Command, s *settings) (string, error) {
	label := s.cfg.Input.Charset
	if cmd.Flags().Changed("charset") {
		var err error
		if label, err = cmd.Flags().GetString("charset"); err != nil {
			return "", fmt.Errorf("failed to get charset flag: %w", err)
		}
	}
	return label, charset.Validate(label)
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	result, err := driver.Tokenize(args[0], label, s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	if result.Bag.HasErrors() || (result.Bag.HasWarnings() && !s.quiet) {
		diagfmt.Pretty(stderr, result.Bag, result.FileSet, prettyOpts(s, stderr))
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
}
