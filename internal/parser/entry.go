package parser

import (
	"tradiff/internal/ast"
	"tradiff/internal/token"
)

// parseEntry parses "@id = body". The returned entry always carries the span
// where it started, even on error.
//
// Body forms:
//
//	@1 = @2                       alias
//	@1 = #2                       dialog.tlk reference
//	@1 = value [SND] alt [SND]    explicit, sound tags and alt optional
//
// value and alt are a literal, @id or #ref followed by "^ literal" parts.
// An @id/#ref head with nothing attached is the alias form. The alt value
// never starts with @id, which always opens the next entry.
func (p *Parser) parseEntry() (ast.Entry, *Error) {
	idTok := p.advance()
	entry := ast.Entry{ID: idTok.Int, Span: idTok.Span}

	if _, err := p.expect(token.Equal); err != nil {
		return entry, err
	}

	head, err := p.expect(append([]token.Kind{token.Id, token.TlkRef}, stringKinds...)...)
	if err != nil {
		return entry, err
	}

	if head.Kind == token.Id || head.Kind == token.TlkRef {
		if !p.atOr(token.ConcatOperator, token.SoundRef, token.TlkRef) && !p.atOr(stringKinds...) {
			if head.Kind == token.Id {
				entry.Content = ast.AtContent(head.Int)
			} else {
				entry.Content = ast.TlkContent(head.Uint)
			}
			entry.Span.End = p.lastEnd
			return entry, nil
		}
	}

	value, err := p.parseConcatTail(headValue(head))
	if err != nil {
		return entry, err
	}
	explicit := ast.ExplicitEntry{Value: value}
	explicit.Sound = p.parseSound()

	if p.at(token.TlkRef) || p.atOr(stringKinds...) {
		altHead := p.advance()
		alt, err := p.parseConcatTail(headValue(altHead))
		if err != nil {
			return entry, err
		}
		explicit.AltValue = &alt
		explicit.AltSound = p.parseSound()
	}

	entry.Content = ast.ExplicitContent(explicit)
	entry.Span.End = p.lastEnd
	return entry, nil
}

// parseConcatTail folds "^ literal" parts onto head.
func (p *Parser) parseConcatTail(head ast.WeiduString) (ast.WeiduString, *Error) {
	out := head
	for p.at(token.ConcatOperator) {
		p.advance()
		tok, err := p.expect(stringKinds...)
		if err != nil {
			return out, err
		}
		out = ast.Concat(out, literalOf(tok))
	}
	return out, nil
}

func (p *Parser) parseSound() *string {
	if !p.at(token.SoundRef) {
		return nil
	}
	name := p.advance().Value
	return &name
}

func headValue(tok token.Token) ast.WeiduString {
	switch tok.Kind {
	case token.Id:
		return ast.AtRef(tok.Int)
	case token.TlkRef:
		return ast.TlkRef(tok.Uint)
	default:
		return ast.Lit(literalOf(tok))
	}
}

func literalOf(tok token.Token) ast.StringLit {
	switch tok.Kind {
	case token.FiveTildeString:
		return ast.FiveTildes(tok.Value)
	case token.DoubleQuoteString:
		return ast.DQuote(tok.Value)
	case token.PercentString:
		return ast.Percent(tok.Value)
	default:
		return ast.Tilde(tok.Value)
	}
}
