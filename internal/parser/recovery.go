package parser

import (
	"tradiff/internal/ast"
	"tradiff/internal/diag"
	"tradiff/internal/source"
)

// recover records err, skips to the next fragment start and leaves an Error
// fragment covering the skipped region.
func (p *Parser) recover(err *Error, start uint32) {
	p.record(err)
	p.resyncTop()
	end := max(p.lastEnd, start)
	p.frags = append(p.frags, ast.ErrorFragment(source.Span{File: err.Span.File, Start: start, End: end}))
}

// resyncTop discards tokens until an @id, a comment or EOF. Lexical failures
// inside the region are swallowed: the region already has its error.
func (p *Parser) resyncTop() {
	for {
		tok, lexErr := p.peek()
		if lexErr == nil && (tok.Kind.StartsFragment() || tok.IsEOF()) {
			return
		}
		p.advance()
	}
}

func (p *Parser) record(err *Error) {
	p.recorded++
	if p.opts.MaxErrors > 0 && p.recorded > p.opts.MaxErrors {
		if p.recorded == p.opts.MaxErrors+1 {
			p.reportLimit(err.Span)
		}
		return
	}
	p.errs = append(p.errs, err)
	p.report(err)
}

func (p *Parser) report(err *Error) {
	if p.opts.Reporter == nil {
		return
	}
	d := diag.NewError(err.Code(), err.Span, err.Error())
	if len(err.Expected) > 0 {
		d = d.WithNote(err.Span, "expected one of: "+err.ExpectedList())
	}
	diag.Emit(p.opts.Reporter, d)
}

func (p *Parser) reportLimit(sp source.Span) {
	if p.opts.Reporter == nil {
		return
	}
	diag.Emit(p.opts.Reporter, diag.Warningf(diag.SynTooManyErrors, sp,
		"more than %d errors; further errors in this file are not listed", p.opts.MaxErrors))
}
