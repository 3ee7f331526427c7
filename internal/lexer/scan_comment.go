package lexer

import (
	"bytes"

	"tradiff/internal/token"
)

// scanLineComment lexes // up to the newline, which is left for the
// whitespace skipper. A comment on the last line may end at EOF.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	bodyStart := lx.cursor.Off
	if nl := lx.cursor.IndexByte('\n'); nl >= 0 {
		lx.cursor.BumpN(uint32(nl)) // #nosec G115 -- nl < Limit
	} else {
		lx.cursor.Reset(Mark(lx.cursor.Limit))
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  token.EndOfLineComment,
		Span:  sp,
		Text:  lx.text(sp),
		Value: string(lx.file.Content[bodyStart:sp.End]),
	}
}

// scanEnclosedComment lexes /* ... */ up to the first */.
func (lx *Lexer) scanEnclosedComment() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	bodyStart := lx.cursor.Off
	end := bytes.Index(lx.file.Content[bodyStart:lx.cursor.Limit], []byte("*/"))
	if end < 0 {
		return lx.unclosed(start, "/*")
	}
	lx.cursor.BumpN(uint32(end) + 2) // #nosec G115 -- end < Limit
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  token.EnclosedComment,
		Span:  sp,
		Text:  lx.text(sp),
		Value: string(lx.file.Content[bodyStart : sp.End-2]),
	}, nil
}
