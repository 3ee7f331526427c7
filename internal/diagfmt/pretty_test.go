package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tradiff/internal/diag"
	"tradiff/internal/source"
)

// TestPathModes checks the path rendering modes.
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("@1 = ~unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/tra/test.tra", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminated,
		source.Span{File: fileID, Start: 5, End: 18},
		"unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/tra/test.tra:1:6:"},
		{"Relative path", PathModeRelative, "tra/test.tra:1:6:"},
		{"Basename only", PathModeBasename, "test.tra:1:6:"},
		{"Auto keeps the given path", PathModeAuto, "/home/user/project/tra/test.tra:1:6:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: unterminated string literal") {
				t.Errorf("expected header in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tra", []byte("@1 = ~a~\n@2 = junk\n"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 14, End: 18}, "unexpected token"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	want := []string{
		"test.tra:2:6: ERROR SYN2001: unexpected token",
		"1 | @1 = ~a~",
		"2 | @2 = junk",
		"  |      ^^^^",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.tra", []byte("@1 = ~日本~ junk"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 14, End: 18}, "unexpected token"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got:\n%s", buf.String())
	}
	if want := "  | " + strings.Repeat(" ", 12) + "^^^^"; lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyCaretAtEOF(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("eof.tra", []byte("@1 ="))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedEOF, source.Span{File: fileID, Start: 4, End: 4}, "unexpected end of file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	output := buf.String()
	if !strings.Contains(output, "eof.tra:1:5: ERROR SYN2002") {
		t.Errorf("expected EOF location, got:\n%s", output)
	}
	if !strings.HasSuffix(output, "  |     ^\n") {
		t.Errorf("expected caret after the last column, got:\n%s", output)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tra", []byte("@1 = ~a~\n@1 = ~b~\n"))

	d := diag.New(diag.SevWarning, diag.CmpDuplicateEntry, source.Span{File: fileID, Start: 9, End: 11}, "entry @1 is defined 2 times").
		WithNote(source.Span{File: fileID, Start: 0, End: 2}, "first defined here")
	bag := diag.NewBag(0)
	bag.Add(d)

	tests := []struct {
		name      string
		showNotes bool
		wantNote  bool
	}{
		{"with notes", true, true},
		{"without notes", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: tt.showNotes})
			got := strings.Contains(buf.String(), "note: test.tra:1:1: first defined here")
			if got != tt.wantNote {
				t.Errorf("note present = %v, want %v:\n%s", got, tt.wantNote, buf.String())
			}
		})
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: 7}, "lost"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got := buf.String(); got != "ERROR SYN2001: lost\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.tra", []byte("junk"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 4}, "unexpected token"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes: %q", colored.String())
	}
}
