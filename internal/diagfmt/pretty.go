package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tradiff/internal/diag"
	"tradiff/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
	}
	toggle(enabled, p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note)
	return p
}

// toggle forces colors on or off regardless of color.NoColor.
func toggle(enabled bool, cs ...*color.Color) {
	for _, c := range cs {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders every diagnostic of bag as
//
//	path:line:col: SEVERITY CODE: message
//	   3 | @2 = junk
//	     |      ^^^^
//	  note: path:line:col: text
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	PrettyList(w, bag.Items(), fs, opts)
}

// PrettyList is Pretty over a plain slice.
func PrettyList(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i := range diags {
		writeDiagnostic(w, &diags[i], fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := fmt.Sprintf("%s %s: %s",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	if !known(fs, d.Primary) {
		fmt.Fprintln(w, header)
	} else {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s\n", formatPath(fs, f, opts.PathMode), start.Line, start.Col, header)
		writeSnippet(w, fs, f, d.Primary, opts.Context, pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		if !known(fs, note.Span) {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), note.Msg)
			continue
		}
		nf := fs.Get(note.Span.File)
		pos, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(fs, nf, opts.PathMode), pos.Line, pos.Col, note.Msg)
	}
}

// writeSnippet prints the primary line, context lines above it and an
// underline of the span. Columns are measured in display cells.
func writeSnippet(w io.Writer, fs *source.FileSet, f *source.File, span source.Span, context int8, pal palette) {
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)

	first := start.Line
	if context > 0 {
		back := uint32(context)
		if back >= first {
			back = first - 1
		}
		first -= back
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for n := first; n <= start.Line; n++ {
		text := expandTabs(f.GetLine(n))
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, n), text)
	}

	col := int(start.Col) - 1
	col = min(col, len(line))
	pad := runewidth.StringWidth(expandTabs(line[:col]))

	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	width := 1
	if stop > col {
		width = max(1, runewidth.StringWidth(expandTabs(line[col:stop])))
	}

	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint(strings.Repeat("^", width)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
