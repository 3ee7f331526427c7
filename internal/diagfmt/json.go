package diagfmt

import (
	"encoding/json"
	"io"

	"tradiff/internal/diag"
	"tradiff/internal/source"
)

// PositionJSON is a 1-based line and column.
type PositionJSON struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// LocationJSON places a diagnostic or note. File is empty, and Start and End
// are nil, when the span's file is unknown; Start and End are also nil
// unless positions were requested.
type LocationJSON struct {
	File      string        `json:"file,omitempty"`
	ByteStart uint32        `json:"byte_start"`
	ByteEnd   uint32        `json:"byte_end"`
	Start     *PositionJSON `json:"start,omitempty"`
	End       *PositionJSON `json:"end,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of JSON diagnostics output. Dropped counts
// diagnostics the bag refused plus those cut by JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{ByteStart: span.Start, ByteEnd: span.End}
	if !known(l.fs, span) {
		return loc
	}
	loc.File = formatPath(l.fs, l.fs.Get(span.File), l.opts.PathMode)
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(span)
		loc.Start = &PositionJSON{Line: start.Line, Col: start.Col}
		loc.End = &PositionJSON{Line: end.Line, Col: end.Col}
	}
	return loc
}

func (l locator) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: l.at(d.Primary),
	}
	if l.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: l.at(n.Span)})
		}
	}
	return out
}

// BuildDiagnosticsOutput converts bag without encoding it, so callers can
// embed the result in a larger document.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	kept := items
	if opts.Max > 0 && opts.Max < len(items) {
		kept = items[:opts.Max]
	}

	l := locator{fs: fs, opts: opts}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, len(kept)),
		Count:       len(kept),
		Dropped:     bag.Dropped() + len(items) - len(kept),
	}
	for i := range kept {
		out.Diagnostics[i] = l.diagnostic(&kept[i])
	}
	return out
}

// JSON writes the diagnostics of bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return encodeJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
