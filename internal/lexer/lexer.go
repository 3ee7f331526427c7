package lexer

import (
	"tradiff/internal/source"
	"tradiff/internal/token"
)

type result struct {
	tok   token.Token
	err   error
	start uint32 // cursor offset before the buffered token was scanned
}

// Lexer produces tokens lazily from one decoded file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *result // one-slot lookahead
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next token. At the end of input it returns an EOF token,
// and keeps returning it. On failure it returns an Invalid token together
// with a *Error; the lexer is already positioned past the bad input.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		r := *lx.look
		lx.look = nil
		return r.tok, r.err
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, error) {
	if lx.look == nil {
		start := lx.cursor.Off
		tok, err := lx.scan()
		lx.look = &result{tok: tok, err: err, start: start}
	}
	return lx.look.tok, lx.look.err
}

// Offset returns the position the next call to Next starts scanning from.
func (lx *Lexer) Offset() uint32 {
	if lx.look != nil {
		return lx.look.start
	}
	return lx.cursor.Off
}

// Reset restarts lexing at off, dropping any buffered token.
func (lx *Lexer) Reset(off uint32) {
	lx.look = nil
	lx.cursor.Reset(Mark(off))
}

// EmptySpan returns a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	off := lx.Offset()
	return source.Span{File: lx.file.ID, Start: off, End: off}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) scan() (token.Token, error) {
	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Mark())}, nil
	}

	switch ch := lx.cursor.Peek(); ch {
	case '@':
		return lx.scanNumber(token.Id)
	case '#':
		return lx.scanNumber(token.TlkRef)
	case '=':
		return lx.scanSingle(token.Equal), nil
	case '^':
		return lx.scanSingle(token.ConcatOperator), nil
	case '~':
		// the five-tilde form must win over a plain ~string~
		if lx.cursor.HasPrefix(fiveTildes) {
			if tok, ok := lx.scanFiveTildes(); ok {
				return tok, nil
			}
		}
		return lx.scanDelimited(token.TildeString, '~')
	case '"':
		return lx.scanDelimited(token.DoubleQuoteString, '"')
	case '%':
		return lx.scanDelimited(token.PercentString, '%')
	case '[':
		return lx.scanSoundRef()
	case '/':
		switch lx.cursor.PeekAt(1) {
		case '/':
			return lx.scanLineComment(), nil
		case '*':
			return lx.scanEnclosedComment()
		}
	}
	return lx.invalid()
}

func (lx *Lexer) scanSingle(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// invalid consumes one rune and reports it.
func (lx *Lexer) invalid() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text},
		&Error{Kind: InvalidToken, Span: sp, Detail: text}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
