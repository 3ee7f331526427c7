package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tradiff/internal/version"
)

// errReported is returned by commands that already explained the failure
// to the user; main only sets the exit status for it.
var errReported = errors.New("failure already reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradiff [flags] <file1> <file2>",
		Short: "Compare the entry ids of two WeiDU TRA files",
		Long: `tradiff parses two WeiDU translation (.tra) files and reports the entries
defined in only one of them, along with ids defined more than once.`,
		Args:              cobra.ExactArgs(2),
		Version:           version.Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupCommand,
		RunE:              runCompare,
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress warnings and non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics kept per file (0 = no limit)")
	pf.String("log-level", "", "log level (trace|debug|info|warn|error)")
	pf.String("config", "", "path to tradiff.toml (default: searched upwards from the working directory)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("trace-profile", "", "write a runtime execution trace to this file")

	addCompareFlags(root)

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if profErr := stopProfiling(); profErr != nil {
		log.Error().Err(profErr).Msg("failed to write profiles")
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
