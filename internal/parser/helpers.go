package parser

import (
	"errors"
	"slices"

	"tradiff/internal/lexer"
	"tradiff/internal/token"
)

var stringKinds = []token.Kind{
	token.FiveTildeString, token.TildeString, token.DoubleQuoteString, token.PercentString,
}

// peek returns the next token; a lexical failure comes back as a *lexer.Error
// and stays buffered until advance.
func (p *Parser) peek() (token.Token, *lexer.Error) {
	tok, err := p.lx.Peek()
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return tok, lexErr
		}
		return tok, &lexer.Error{Kind: lexer.Unspecified, Span: tok.Span, Detail: err.Error()}
	}
	return tok, nil
}

// advance consumes the buffered token and updates lastEnd.
func (p *Parser) advance() token.Token {
	tok, _ := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	tok, err := p.peek()
	return err == nil && slices.Contains(kinds, tok.Kind)
}

// expect consumes a token of one of kinds or builds the error describing why
// it cannot.
func (p *Parser) expect(kinds ...token.Kind) (token.Token, *Error) {
	tok, lexErr := p.peek()
	if lexErr != nil {
		return tok, fromLex(tok, lexErr)
	}
	if !slices.Contains(kinds, tok.Kind) {
		return tok, unexpected(tok, kinds...)
	}
	return p.advance(), nil
}
