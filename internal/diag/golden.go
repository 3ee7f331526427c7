package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"tradiff/internal/source"
)

type goldenLine struct {
	label string
	code  string
	path  string
	line  uint32
	col   uint32
	msg   string
}

func (a goldenLine) compare(b goldenLine) int {
	return cmp.Or(
		strings.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		strings.Compare(a.label, b.label),
		strings.Compare(a.code, b.code),
		strings.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders diagnostics one per line as
// "severity CODE path:line:col message", ordered by position. With
// includeNotes each note follows as a "note" line. Paths are relative to the
// file set's base directory; spans in files unknown to fs are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(label string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		path := filepath.ToSlash(fs.Get(sp.File).FormatPath("relative", fs.BaseDir()))
		lines = append(lines, goldenLine{
			label: label,
			code:  code.ID(),
			path:  strings.TrimPrefix(path, "./"),
			line:  start.Line,
			col:   start.Col,
			msg:   strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(d.Severity.Lower(), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(lines, goldenLine.compare)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.col, l.msg)
	}
	return strings.Join(out, "\n")
}
