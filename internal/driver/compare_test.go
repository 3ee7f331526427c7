package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"tradiff/internal/charset"
	"tradiff/internal/compare"
	"tradiff/internal/diag"
	"tradiff/internal/observ"
	"tradiff/internal/pipeline"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func comparePair(t *testing.T, first, second string, opts Options) (*CompareResult, error) {
	t.Helper()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tra", []byte(first))
	b := writeFile(t, dir, "b.tra", []byte(second))
	return Compare(context.Background(), a, b, opts)
}

func ids(r *FileResult) []int64 {
	out := make([]int64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.ID
	}
	return out
}

func TestCompareAddedRemoved(t *testing.T) {
	res, err := comparePair(t,
		"@1 = ~a~\n@2 = ~b~\n@3 = ~c~\n",
		"@4 = ~d~\n@3 = ~c~\n@2 = ~b~\n",
		Options{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	want := compare.Delta{Added: []int64{4}, Removed: []int64{1}}
	if !slices.Equal(res.Report.Delta.Added, want.Added) || !slices.Equal(res.Report.Delta.Removed, want.Removed) {
		t.Errorf("delta = %+v, want %+v", res.Report.Delta, want)
	}
	if !slices.Equal(res.Report.Unchanged, []int64{2, 3}) {
		t.Errorf("unchanged = %v", res.Report.Unchanged)
	}
	if got := ids(res.Second); !slices.Equal(got, []int64{2, 3, 4}) {
		t.Errorf("second entries not sorted: %v", got)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestCompareIdentical(t *testing.T) {
	text := "// header\n@1 = ~a~ [SND]\n@2 = @1\n"
	res, err := comparePair(t, text, text, Options{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !res.Report.Delta.Same() {
		t.Errorf("expected no difference, got %+v", res.Report.Delta)
	}
}

func TestCompareDuplicates(t *testing.T) {
	res, err := comparePair(t,
		"@1 = ~a~\n@2 = ~b~\n@2 = ~c~\n@3 = ~x~\n@3 = ~y~\n@3 = ~z~\n",
		"@1 = ~a~\n@2 = ~b~\n@3 = ~x~\n",
		Options{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	wantDups := []compare.Duplicate{{ID: 2, Count: 2}, {ID: 3, Count: 3}}
	if !slices.Equal(res.Report.FirstDuplicates, wantDups) {
		t.Errorf("first duplicates = %v, want %v", res.Report.FirstDuplicates, wantDups)
	}
	if len(res.Report.SecondDuplicates) != 0 {
		t.Errorf("second duplicates = %v", res.Report.SecondDuplicates)
	}
	if !res.Report.Delta.Same() {
		t.Errorf("duplicates must not change the set result: %+v", res.Report.Delta)
	}

	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 duplicate warnings, got %v", items)
	}
	for _, d := range items {
		if d.Code != diag.CmpDuplicateEntry || d.Severity != diag.SevWarning {
			t.Errorf("unexpected diagnostic %+v", d)
		}
	}
	if got := len(items[1].Notes); got != 2 {
		t.Errorf("@3 warning has %d notes, want 2", got)
	}
	// the warning points at the second definition of @2, on line 3
	f := res.FileSet.Get(res.First.FileID)
	if pos, _ := f.Position(items[0].Primary.Start); pos.Line != 3 {
		t.Errorf("warning on line %d, want 3", pos.Line)
	}
}

func TestCompareRecoverable(t *testing.T) {
	res, err := comparePair(t,
		"@1 = ~a~\n@2 = junk\n@3 = ~c~\n",
		"@1 = ~a~\n@3 = ~c~\n",
		Options{})
	if err != nil {
		t.Fatalf("recoverable errors must not stop the comparison: %v", err)
	}
	if len(res.First.Errors) != 1 {
		t.Fatalf("expected one recoverable error, got %v", res.First.Errors)
	}
	if got := ids(res.First); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("entries = %v, want [1 3]", got)
	}
	if !res.Bag.HasErrors() {
		t.Error("expected the error in the merged bag")
	}
	if !res.Report.Delta.Same() {
		t.Errorf("delta = %+v", res.Report.Delta)
	}
}

func TestCompareFatal(t *testing.T) {
	const ok, bad = "@1 = ~a~\n", "@1 = "
	tests := []struct {
		name          string
		first, second string
		wantWhich     string
	}{
		{"first file", bad, ok, First},
		{"second file", ok, bad, Second},
		{"both files report the first", bad, bad, First},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := comparePair(t, tt.first, tt.second, Options{})
			fe, isFatal := IsFatal(err)
			if !isFatal {
				t.Fatalf("expected *FatalError, got %v", err)
			}
			if fe.Which != tt.wantWhich {
				t.Errorf("which = %q, want %q", fe.Which, tt.wantWhich)
			}
			if res == nil || !res.Bag.HasErrors() {
				t.Errorf("expected the fatal diagnostic to be returned")
			}
		})
	}
}

func TestCompareMissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tra", []byte("@1 = ~a~\n"))
	_, err := Compare(context.Background(), a, filepath.Join(dir, "missing.tra"), Options{})
	fe, ok := IsFatal(err)
	if !ok || fe.Which != Second {
		t.Fatalf("expected fatal error for the second file, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestCompareCharsets(t *testing.T) {
	dir := t.TempDir()
	latin := writeFile(t, dir, "latin.tra", []byte("@1 = ~caf\xe9~\n@2 = ~b~\n"))
	utf := writeFile(t, dir, "utf.tra", []byte("@1 = ~caf\u00e9~\n@2 = ~b~\n"))

	res, err := Compare(context.Background(), latin, utf, Options{Charsets: [2]string{"windows-1252", "utf-8"}})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
	first := res.First.Entries[0].Content.Explicit.Value.Lit.Text
	second := res.Second.Entries[0].Content.Explicit.Value.Lit.Text
	if first != second {
		t.Errorf("decoded text differs: %q vs %q", first, second)
	}

	// the same bytes read as UTF-8 still parse but carry a warning
	res, err = Compare(context.Background(), latin, utf, Options{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLossyDecode {
		t.Errorf("expected one IO4001 warning, got %v", items)
	}
}

func TestCompareUnknownCharset(t *testing.T) {
	_, err := comparePair(t, "@1 = ~a~", "@1 = ~a~", Options{Charsets: [2]string{"klingon", ""}})
	if !errors.Is(err, charset.ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got %v", err)
	}
}

func TestCompareCache(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	text := "/* c */\n@1 = ~a~ ^ \"b\" [S1] %alt% [S2]\n@2 = #12\n@3 = @1\n"
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tra", []byte(text))
	b := writeFile(t, dir, "b.tra", []byte("@1 = ~x~\n@2 = junk\n"))

	opts := Options{Cache: cache}
	cold, err := Compare(context.Background(), a, b, opts)
	if err != nil {
		t.Fatalf("cold run: %v", err)
	}
	warm, err := Compare(context.Background(), a, b, opts)
	if err != nil {
		t.Fatalf("warm run: %v", err)
	}

	if cold.First.Cached || !warm.First.Cached {
		t.Errorf("cached flags: cold=%v warm=%v", cold.First.Cached, warm.First.Cached)
	}
	if warm.Second.Cached {
		t.Error("a file with recoverable errors must not be served from the cache")
	}
	if len(cold.First.Fragments) != len(warm.First.Fragments) {
		t.Fatalf("fragment count %d vs %d", len(cold.First.Fragments), len(warm.First.Fragments))
	}
	for i := range cold.First.Fragments {
		c, w := cold.First.Fragments[i], warm.First.Fragments[i]
		if !c.Equal(w) || c.Span != w.Span {
			t.Errorf("fragment %d: %v %v vs %v %v", i, c, c.Span, w, w.Span)
		}
	}
}

func TestCompareProgressAndTiming(t *testing.T) {
	var rec pipeline.Recorder
	res, err := comparePair(t, "@1 = ~a~", "@2 = ~b~", Options{Progress: &rec, Timer: observ.NewTimer()})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	done := map[pipeline.Stage]int{}
	for _, ev := range rec.Events() {
		if ev.Status == pipeline.StatusDone {
			done[ev.Stage]++
		}
	}
	if done[pipeline.StageDecode] != 2 || done[pipeline.StageParse] != 2 || done[pipeline.StageCompare] != 1 {
		t.Errorf("done events = %v", done)
	}
	if res.Timing == nil || len(res.Timing.Phases) < 5 {
		t.Errorf("expected decode, parse and compare phases, got %+v", res.Timing)
	}
}

func TestCompareCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tra", []byte("@1 = ~a~"))
	_, err := Compare(ctx, a, a, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := IsFatal(err); ok {
		t.Error("cancellation is not a fatal file error")
	}
}
