package parser_test

import (
	"strings"
	"testing"

	"tradiff/internal/ast"
	"tradiff/internal/diag"
	"tradiff/internal/parser"
	"tradiff/internal/source"
)

func parseSource(t *testing.T, input string, opts parser.Options) ([]ast.Fragment, []*parser.Error, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tra", []byte(input))
	return parser.Parse(fs.Get(id), nil, opts)
}

func mustParse(t *testing.T, input string) []ast.Fragment {
	t.Helper()
	frags, errs, err := parseSource(t, input, parser.Options{})
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected recoverable errors: %v", errs)
	}
	return frags
}

func entry(id int64, e ast.ExplicitEntry) ast.Fragment {
	return ast.EntryFragment(ast.NewEntry(id, ast.ExplicitContent(e)))
}

func eol(text string) ast.Fragment {
	return ast.CommentFragment(ast.Comment{Kind: ast.EndOfLine, Text: text}, source.Span{})
}

func enclosed(text string) ast.Fragment {
	return ast.CommentFragment(ast.Comment{Kind: ast.Enclosed, Text: text}, source.Span{})
}

func errorFrag() ast.Fragment {
	return ast.ErrorFragment(source.Span{})
}

func expectFragments(t *testing.T, got, want []ast.Fragment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d fragments, got %d:\n%s", len(want), len(got), dump(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("fragment %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func dump(frags []ast.Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString("  " + f.Kind.String() + ": " + f.String() + "\n")
	}
	return sb.String()
}

func sound(name string) *string { return &name }

func collectingReporter() (*diag.Bag, diag.Reporter) {
	bag := diag.NewBag(0)
	return bag, diag.BagReporter{Bag: bag}
}

func makeFile(t *testing.T, input string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.tra", []byte(input)))
}
