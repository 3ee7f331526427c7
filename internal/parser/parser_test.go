package parser_test

import (
	"testing"

	"tradiff/internal/ast"
	"tradiff/internal/parser"
)

func TestMultipleStringVariants(t *testing.T) {
	input := `
    @1 = ~aaa~
    @2 = "bbb"
    @3 = %ccc%
    @4 = ~~~~~abc~~abc~~~~~
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, ast.Simplest(ast.Tilde("aaa"))),
		entry(2, ast.Simplest(ast.DQuote("bbb"))),
		entry(3, ast.Simplest(ast.Percent("ccc"))),
		entry(4, ast.Simplest(ast.FiveTildes("abc~~abc"))),
	})
}

func TestMultipleEntriesOnSingleLine(t *testing.T) {
	input := `
    @1 = ~aaa~ @2 = "bbb"  @3 = %ccc% @4 = ~~~~~abc~~abc~~~~~
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, ast.Simplest(ast.Tilde("aaa"))),
		entry(2, ast.Simplest(ast.DQuote("bbb"))),
		entry(3, ast.Simplest(ast.Percent("ccc"))),
		entry(4, ast.Simplest(ast.FiveTildes("abc~~abc"))),
	})
}

func TestEnclosedCommentsBetweenEntries(t *testing.T) {
	input := `
    /* comment 1 */
    @1 = ~aaa~
    /* comment 2 */
    @2 = "bbb"
    /* comment 3 */
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		enclosed(" comment 1 "),
		entry(1, ast.Simplest(ast.Tilde("aaa"))),
		enclosed(" comment 2 "),
		entry(2, ast.Simplest(ast.DQuote("bbb"))),
		enclosed(" comment 3 "),
	})
}

func TestEndOfLineComments(t *testing.T) {
	input := `
    // comment 1
    @1 = ~aaa~ // comment 2
    @2 = "bbb"// comment 3
    // comment 4
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		eol(" comment 1"),
		entry(1, ast.Simplest(ast.Tilde("aaa"))),
		eol(" comment 2"),
		entry(2, ast.Simplest(ast.DQuote("bbb"))),
		eol(" comment 3"),
		eol(" comment 4"),
	})
}

func TestMultilineEnclosedComment(t *testing.T) {
	input := "\n    @1 = ~aaa~\n    /*\n    comment 2\n    */\n    @2 = \"bbb\"\n    "
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, ast.Simplest(ast.Tilde("aaa"))),
		enclosed("\n    comment 2\n    "),
		entry(2, ast.Simplest(ast.DQuote("bbb"))),
	})
}

func TestFemaleVariant(t *testing.T) {
	input := `
    @1 = ~aaa~ ~aab~
    @2 = "bbb" "bbc"
    @3 = %ccc% %ccd%
    @4 = ~~~~~abc~~abc~~~~~ ~~~~~bca~~bca~~~~~
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, ast.WithAlt(ast.Tilde("aaa"), ast.Tilde("aab"))),
		entry(2, ast.WithAlt(ast.DQuote("bbb"), ast.DQuote("bbc"))),
		entry(3, ast.WithAlt(ast.Percent("ccc"), ast.Percent("ccd"))),
		entry(4, ast.WithAlt(ast.FiveTildes("abc~~abc"), ast.FiveTildes("bca~~bca"))),
	})
}

func TestMaleSound(t *testing.T) {
	input := `
    @1 = ~aaa~ [ASOUND]
    @2 = "bbb" [BSOUND]
    @3 = %ccc% [CSOUND]
    @4 = ~~~~~abc~~abc~~~~~[DSOUND]
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, ast.WithSound(ast.Tilde("aaa"), "ASOUND")),
		entry(2, ast.WithSound(ast.DQuote("bbb"), "BSOUND")),
		entry(3, ast.WithSound(ast.Percent("ccc"), "CSOUND")),
		entry(4, ast.WithSound(ast.FiveTildes("abc~~abc"), "DSOUND")),
	})
}

func full(value ast.StringLit, snd string, alt ast.StringLit, altSnd string) ast.ExplicitEntry {
	a := ast.Lit(alt)
	return ast.NewExplicit(ast.Lit(value), snd, &a, altSnd)
}

func TestMaleSoundAndFemaleVariant(t *testing.T) {
	input := `
    @1 = ~aaa~ [ASOUND] ~aab~
    @2 = "bbb" [BSOUND] "bbc"
    @3 = %ccc% [CSOUND] %ccd%
    @4 = ~~~~~abc~~abc~~~~~[DSOUND] ~~~~~bca~~bca~~~~~
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, full(ast.Tilde("aaa"), "ASOUND", ast.Tilde("aab"), "")),
		entry(2, full(ast.DQuote("bbb"), "BSOUND", ast.DQuote("bbc"), "")),
		entry(3, full(ast.Percent("ccc"), "CSOUND", ast.Percent("ccd"), "")),
		entry(4, full(ast.FiveTildes("abc~~abc"), "DSOUND", ast.FiveTildes("bca~~bca"), "")),
	})
}

func TestAllElementsWithEndOfLineComments(t *testing.T) {
	input := `
    @1 = ~aaa~ [ASOUND] ~aab~ [FASOUND] // comment 1
    @2 = "bbb" [BSOUND] "bbc" [FBSOUND] // comment 2
    @3 = %ccc% [CSOUND] %ccd% [FCSOUND] // comment 3
    @4 = ~~~~~abc~~abc~~~~~[DSOUND] ~~~~~bca~~bca~~~~~ [FDSOUND] // comment 4
    `
	expectFragments(t, mustParse(t, input), []ast.Fragment{
		entry(1, full(ast.Tilde("aaa"), "ASOUND", ast.Tilde("aab"), "FASOUND")),
		eol(" comment 1"),
		entry(2, full(ast.DQuote("bbb"), "BSOUND", ast.DQuote("bbc"), "FBSOUND")),
		eol(" comment 2"),
		entry(3, full(ast.Percent("ccc"), "CSOUND", ast.Percent("ccd"), "FCSOUND")),
		eol(" comment 3"),
		entry(4, full(ast.FiveTildes("abc~~abc"), "DSOUND", ast.FiveTildes("bca~~bca"), "FDSOUND")),
		eol(" comment 4"),
	})
}

func TestAliasAndTlkReferences(t *testing.T) {
	frags := mustParse(t, "@1 = @2\n@3 = #42\n@-4 = @-5")
	want := []ast.Entry{
		ast.NewEntry(1, ast.AtContent(2)),
		ast.NewEntry(3, ast.TlkContent(42)),
		ast.NewEntry(-4, ast.AtContent(-5)),
	}
	if len(frags) != len(want) {
		t.Fatalf("got %d fragments:\n%s", len(frags), dump(frags))
	}
	for i, w := range want {
		got, ok := frags[i].AsEntry()
		if !ok || !got.Equal(w) {
			t.Errorf("fragment %d: got %s, want %s", i, frags[i], w)
		}
	}
}

func TestReferenceHeadWithAttachments(t *testing.T) {
	frags := mustParse(t, "@1 = #5 #6\n@2 = @3 [SND]\n@4 = #7 ^ ~x~")
	tlk6 := ast.TlkRef(6)
	expectFragments(t, frags, []ast.Fragment{
		entry(1, ast.NewExplicit(ast.TlkRef(5), "", &tlk6, "")),
		entry(2, ast.NewExplicit(ast.AtRef(3), "SND", nil, "")),
		entry(4, ast.NewExplicit(ast.Concat(ast.TlkRef(7), ast.Tilde("x")), "", nil, "")),
	})
}

func TestConcatNesting(t *testing.T) {
	frags := mustParse(t, `@1 = ~a~ ^ "b" ^ %c%`)
	if len(frags) != 1 {
		t.Fatalf("got %d fragments", len(frags))
	}
	e, _ := frags[0].AsEntry()
	value := e.Content.Explicit.Value
	if value.Kind != ast.StrConcat || value.Lit != ast.Percent("c") {
		t.Fatalf("outer: %v %v", value.Kind, value.Lit)
	}
	inner := value.Left
	if inner.Kind != ast.StrConcat || inner.Lit != ast.DQuote("b") {
		t.Fatalf("inner: %v %v", inner.Kind, inner.Lit)
	}
	if inner.Left.Kind != ast.StrLiteral || inner.Left.Lit != ast.Tilde("a") {
		t.Fatalf("head: %v %v", inner.Left.Kind, inner.Left.Lit)
	}
}

func TestConcatInAltValue(t *testing.T) {
	frags := mustParse(t, "@1 = ~m~ [S] ~f~ ^ ~g~ [FS]")
	alt := ast.Concat(ast.Lit(ast.Tilde("f")), ast.Tilde("g"))
	expectFragments(t, frags, []ast.Fragment{
		entry(1, ast.NewExplicit(ast.Lit(ast.Tilde("m")), "S", &alt, "FS")),
	})
}

func TestFiveTildeLiteral(t *testing.T) {
	frags := mustParse(t, "@7 = ~~~~~x~~y~~~~~")
	e, _ := frags[0].AsEntry()
	if got := e.Content.Explicit.Value.Lit; got != ast.FiveTildes("x~~y") {
		t.Errorf("got %#v", got)
	}
}

func TestEntrySpans(t *testing.T) {
	input := "@1 = ~a~ [S]\n@2 = @3"
	frags := mustParse(t, input)
	if got := input[frags[0].Span.Start:frags[0].Span.End]; got != "@1 = ~a~ [S]" {
		t.Errorf("first span: %q", got)
	}
	if got := input[frags[1].Span.Start:frags[1].Span.End]; got != "@2 = @3" {
		t.Errorf("second span: %q", got)
	}
}

func TestParseTextEmpty(t *testing.T) {
	frags, errs, err := parser.ParseText("  \n\t ")
	if err != nil || len(errs) != 0 || len(frags) != 0 {
		t.Fatalf("got %d fragments, %d errors, %v", len(frags), len(errs), err)
	}
}
