package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"tradiff/internal/ast"
	"tradiff/internal/lexer"
	"tradiff/internal/source"
	"tradiff/internal/token"
)

// maxTokensPerByte bounds CheckTokenInvariants so a lexer that stops advancing
// fails instead of hanging.
const maxTokensPerByte = 2

// CheckTokenInvariants lexes sf to EOF and verifies:
// 1) every token span lies inside the content and points at sf
// 2) spans are strictly increasing and do not overlap
// 3) Text of a valid token equals the source slice of its span
// 4) the lexer always makes progress
func CheckTokenInvariants(sf *source.File) error {
	if sf == nil {
		return errors.New("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	lx := lexer.New(sf)
	var prevEnd uint32
	limit := maxTokensPerByte*len(sf.Content) + 2
	for i := 0; ; i++ {
		if i > limit {
			return fmt.Errorf("lexer produced more than %d tokens for %d bytes", limit, len(sf.Content))
		}
		before := lx.Offset()
		tok, lexErr := lx.Next()
		if tok.Kind == token.EOF {
			return nil
		}
		if lx.Offset() <= before {
			return fmt.Errorf("lexer did not advance at offset %d", before)
		}
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.End > lenContent || sp.Start > sp.End {
			return fmt.Errorf("token span %v outside content of %d bytes", sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token span %v overlaps previous end %d", sp, prevEnd)
		}
		if lexErr == nil {
			if sp.Empty() {
				return fmt.Errorf("empty %s token at %d", tok.Kind, sp.Start)
			}
			if got := sf.Slice(sp); got != tok.Text {
				return fmt.Errorf("token text %q differs from source %q", tok.Text, got)
			}
			prevEnd = sp.End
		} else {
			// an unterminated delimiter only consumes its first byte
			prevEnd = lx.Offset()
		}
	}
}

// CheckFragmentInvariants verifies parsed fragments:
// 1) spans are non-empty, inside the content and point at sf
// 2) fragments appear in source order without overlap
// 3) an entry fragment's span equals its entry's span
func CheckFragmentInvariants(frags []ast.Fragment, sf *source.File) error {
	if sf == nil {
		return errors.New("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, f := range frags {
		sp := f.Span
		if sp.File != sf.ID {
			return fmt.Errorf("fragment %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("fragment %d (%s): empty span %v", i, f.Kind, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("fragment %d: span %v beyond content", i, sp)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("fragment %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		if f.Kind == ast.FragEntry && f.Entry.Span != sp {
			return fmt.Errorf("fragment %d: entry span %v differs from fragment span %v", i, f.Entry.Span, sp)
		}
		prevEnd = sp.End
	}
	return nil
}
