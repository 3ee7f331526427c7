package diagfmt

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"tradiff/internal/compare"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 60

const separatorRune = "━"

// TerminalWidth returns the column count of stdout, or DefaultWidth.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

type reportPalette struct {
	orange, green, redBold *color.Color
}

func newReportPalette(enabled bool) reportPalette {
	p := reportPalette{
		orange:  color.RGB(255, 165, 0),
		green:   color.New(color.FgGreen, color.Bold),
		redBold: color.New(color.FgRed, color.Bold),
	}
	toggle(enabled, p.orange, p.green, p.redBold)
	return p
}

// separator returns a line of heavy box-drawing characters exactly width
// display cells wide.
func separator(width int) string {
	cell := runewidth.StringWidth(separatorRune)
	if cell <= 0 {
		cell = 1
	}
	return strings.Repeat(separatorRune, max(width/cell, 1))
}

// FormatReportPretty writes the duplicate warnings for both files followed
// by the added and removed ids.
func FormatReportPretty(w io.Writer, rep compare.Report, opts ReportOpts) error {
	pal := newReportPalette(opts.Color)
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}

	var b strings.Builder
	if len(rep.FirstDuplicates) > 0 || len(rep.SecondDuplicates) > 0 {
		line := pal.orange.Sprint(separator(width))
		fmt.Fprintf(&b, "\n%s\n", line)
		writeDuplicates(&b, pal, "first", opts.FirstPath, rep.FirstDuplicates)
		writeDuplicates(&b, pal, "second", opts.SecondPath, rep.SecondDuplicates)
		fmt.Fprintf(&b, "%s\n\n", line)
	}

	if rep.Delta.Same() {
		b.WriteString("✅ Both files contain the same entries.\n")
	}
	if len(rep.Delta.Added) > 0 {
		fmt.Fprintf(&b, "%s Entries in the second file but not in the first file:\n%s",
			pal.green.Sprint("+"), bulletIDs(rep.Delta.Added))
	}
	if len(rep.Delta.Removed) > 0 {
		fmt.Fprintf(&b, "%s Entries in the first file but not in the second file:\n%s",
			pal.redBold.Sprint("−"), bulletIDs(rep.Delta.Removed))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDuplicates(b *strings.Builder, pal reportPalette, which, path string, dups []compare.Duplicate) {
	if len(dups) == 0 {
		return
	}
	ids := make([]int64, len(dups))
	for i, d := range dups {
		ids[i] = d.ID
	}
	fmt.Fprintf(b, "🚨 %s The %s file (%s) contains duplicated entries\n%s",
		pal.orange.Sprint("WARN"), which, path, bulletIDs(ids))
}

func bulletIDs(ids []int64) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString("  - ")
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte('\n')
	}
	return b.String()
}

// ReportOutput is the JSON form of a comparison.
type ReportOutput struct {
	First       string             `json:"first"`
	Second      string             `json:"second"`
	Report      compare.Report     `json:"report"`
	Same        bool               `json:"same"`
	Diagnostics *DiagnosticsOutput `json:"diagnostics,omitempty"`
}

// FormatReportJSON writes the comparison as a JSON document.
func FormatReportJSON(w io.Writer, out ReportOutput) error {
	out.Same = out.Report.Delta.Same()
	return encodeJSON(w, out)
}

// FatalMessage renders the one-line explanation for a file that could not
// be parsed at all.
func FatalMessage(which, path string, err error, colored bool) string {
	red := color.New(color.FgRed)
	toggle(colored, red)
	return fmt.Sprintf("💥 %s The %s file (%s) could not be parsed\n  - %v", red.Sprint("ERROR"), which, path, err)
}

// RecoveredHeader introduces the list of recoverable errors of one file.
func RecoveredHeader(which, path string, colored bool) string {
	red := color.New(color.FgRed)
	toggle(colored, red)
	return fmt.Sprintf("🚨 %s The %s file (%s) contains syntax errors", red.Sprint("ERROR"), which, path)
}
