package ast_test

import (
	"testing"

	"tradiff/internal/ast"
)

func TestStringLitReemitsDelimiters(t *testing.T) {
	tests := []struct {
		lit  ast.StringLit
		want string
	}{
		{ast.Tilde("a"), "~a~"},
		{ast.DQuote("b"), `"b"`},
		{ast.Percent("c"), "%c%"},
		{ast.FiveTildes("d~~d"), "~~~~~d~~d~~~~~"},
	}
	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.want {
			t.Errorf("%v: got %q, want %q", tt.lit.Delim, got, tt.want)
		}
	}
}

func TestStringLitEqualityIncludesDelimiter(t *testing.T) {
	if ast.Tilde("a") == ast.DQuote("a") {
		t.Error("literals with different delimiters must differ")
	}
	if ast.Tilde("a") != ast.Tilde("a") {
		t.Error("identical literals must be equal")
	}
}

func TestConcatNestsLeft(t *testing.T) {
	w := ast.Chain(ast.Lit(ast.Tilde("a")), ast.DQuote("b"), ast.Percent("c"))
	if w.Kind != ast.StrConcat || w.Lit != ast.Percent("c") {
		t.Fatalf("outer node: %v %v", w.Kind, w.Lit)
	}
	inner := w.Left
	if inner == nil || inner.Kind != ast.StrConcat || inner.Lit != ast.DQuote("b") {
		t.Fatalf("inner node: %+v", inner)
	}
	if inner.Left == nil || inner.Left.Kind != ast.StrLiteral || inner.Left.Lit != ast.Tilde("a") {
		t.Fatalf("head: %+v", inner.Left)
	}
	if got := w.Depth(); got != 2 {
		t.Errorf("depth: got %d, want 2", got)
	}
	if got := w.String(); got != `~a~ ^ "b" ^ %c%` {
		t.Errorf("string: got %q", got)
	}
}

func TestPartsRoundTrip(t *testing.T) {
	w := ast.Chain(ast.TlkRef(7), ast.Tilde("x"), ast.Tilde("y"))
	head, tail := w.Parts()
	if head.Kind != ast.StrRef || head.Ref != 7 {
		t.Fatalf("head: %+v", head)
	}
	if len(tail) != 2 || tail[0] != ast.Tilde("x") || tail[1] != ast.Tilde("y") {
		t.Fatalf("tail: %v", tail)
	}
	if !ast.Chain(head, tail...).Equal(w) {
		t.Error("rebuilt chain differs")
	}
}

func TestWeiduStringEqual(t *testing.T) {
	a := ast.Concat(ast.AtRef(1), ast.Tilde("x"))
	b := ast.Concat(ast.AtRef(1), ast.Tilde("x"))
	c := ast.Concat(ast.AtRef(2), ast.Tilde("x"))
	if !a.Equal(b) {
		t.Error("structurally equal chains must compare equal")
	}
	if a.Equal(c) {
		t.Error("different heads must differ")
	}
	if ast.AtRef(1).Equal(ast.TlkRef(1)) {
		t.Error("@1 and #1 must differ")
	}
}

func TestExplicitEntryString(t *testing.T) {
	alt := ast.Lit(ast.Tilde("f"))
	e := ast.NewExplicit(ast.Lit(ast.Tilde("m")), "SND", &alt, "FSND")
	if got := e.String(); got != "~m~ [SND] ~f~ [FSND]" {
		t.Errorf("got %q", got)
	}
	if got := ast.WithSound(ast.DQuote("x"), "S").String(); got != `"x" [S]` {
		t.Errorf("got %q", got)
	}
}

func TestNewExplicitDropsAltSoundWithoutAlt(t *testing.T) {
	e := ast.NewExplicit(ast.Lit(ast.Tilde("m")), "", nil, "FSND")
	if e.Sound != nil || e.AltValue != nil || e.AltSound != nil {
		t.Errorf("unexpected optional fields: %+v", e)
	}
	if !e.Equal(ast.Simplest(ast.Tilde("m"))) {
		t.Error("expected the simplest entry")
	}
}

func TestExplicitEntryEqual(t *testing.T) {
	a := ast.WithAlt(ast.Tilde("m"), ast.Tilde("f"))
	b := ast.WithAlt(ast.Tilde("m"), ast.Tilde("f"))
	if !a.Equal(b) {
		t.Error("equal entries differ")
	}
	if a.Equal(ast.Simplest(ast.Tilde("m"))) {
		t.Error("entry with alt equals one without")
	}
	if ast.WithSound(ast.Tilde("m"), "A").Equal(ast.WithSound(ast.Tilde("m"), "B")) {
		t.Error("different sounds must differ")
	}
}

func TestEntryString(t *testing.T) {
	tests := []struct {
		entry ast.Entry
		want  string
	}{
		{ast.NewEntry(1, ast.ExplicitContent(ast.Simplest(ast.Tilde("a")))), "@1 = ~a~"},
		{ast.NewEntry(-2, ast.AtContent(5)), "@-2 = @5"},
		{ast.NewEntry(3, ast.TlkContent(9)), "@3 = #9"},
	}
	for _, tt := range tests {
		if got := tt.entry.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestFragments(t *testing.T) {
	entry := ast.NewEntry(1, ast.AtContent(2))
	frag := ast.EntryFragment(entry)
	got, ok := frag.AsEntry()
	if !ok || !got.Equal(entry) {
		t.Fatalf("AsEntry: %v %v", got, ok)
	}
	comment := ast.CommentFragment(ast.Comment{Kind: ast.Enclosed, Text: " c "}, frag.Span)
	if _, ok := comment.AsEntry(); ok {
		t.Error("comment fragment is not an entry")
	}
	if comment.String() != "/* c */" {
		t.Errorf("comment: got %q", comment.String())
	}
	if frag.Equal(comment) {
		t.Error("entry equals comment")
	}
	if !ast.ErrorFragment(frag.Span).Equal(ast.Fragment{Kind: ast.FragError}) {
		t.Error("error fragments compare by kind only")
	}
}
