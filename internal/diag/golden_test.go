package diag

import (
	"testing"

	"tradiff/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/testdata/golden/sample.tra", []byte("@1\n@2\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     CmpDuplicateEntry,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 3, End: 5},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 2},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 3, End: 4}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 testdata/golden/sample.tra:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.tra:2:1 note line\n" +
		"warning CMP3001 testdata/golden/sample.tra:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: SynUnexpectedEOF, Primary: source.Span{File: 3}}}
	if got := FormatGoldenDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
