package lexer

import (
	"strconv"

	"tradiff/internal/token"
)

// scanNumber handles @id (signed) and #tlk (unsigned) references:
// a sigil, an optional '-', then one or more ASCII digits.
// Letters glued to the digits make the whole run an InvalidDigit error
// instead of splitting it into a number and junk.
func (lx *Lexer) scanNumber(kind token.Kind) (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@' or '#'
	digitsStart := lx.cursor.Off
	lx.cursor.Eat('-')
	sawDigit := false
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
		sawDigit = true
	}

	if !sawDigit || isWordByte(lx.cursor.Peek()) {
		for isWordByte(lx.cursor.Peek()) {
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text},
			&Error{Kind: InvalidDigit, Span: sp, Detail: text}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	digits := string(lx.file.Content[digitsStart:sp.End])
	tok := token.Token{Kind: kind, Span: sp, Text: text}

	if kind == token.Id {
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			tok.Kind = token.Invalid
			return tok, numError(err, text, sp)
		}
		tok.Int = v
		return tok, nil
	}

	// a leading '-' fails here with ErrSyntax, which maps to InvalidDigit
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		tok.Kind = token.Invalid
		return tok, numError(err, text, sp)
	}
	tok.Uint = uint32(v)
	return tok, nil
}
