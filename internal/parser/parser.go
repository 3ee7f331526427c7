package parser

import (
	"tradiff/internal/ast"
	"tradiff/internal/diag"
	"tradiff/internal/lexer"
	"tradiff/internal/source"
	"tradiff/internal/token"
)

type Options struct {
	// MaxErrors caps the recoverable errors kept in the error list; zero
	// means no cap. Parsing continues past the cap.
	MaxErrors uint
	// Reporter, if set, receives a diagnostic for every recorded error.
	Reporter diag.Reporter
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	errs     []*Error
	recorded uint // recoverable errors seen, including ones over the cap
	frags    []ast.Fragment
	lastEnd  uint32 // end of the last consumed token
}

// Parse reads every fragment of file.
//
// errs is the accumulator for recoverable errors: new ones are appended and
// the extended list is returned. On a fatal error Parse returns no fragments
// and the fatal *Error as its error.
func Parse(file *source.File, errs []*Error, opts Options) ([]ast.Fragment, []*Error, error) {
	p := Parser{
		lx:    lexer.New(file),
		opts:  opts,
		errs:  errs,
		frags: make([]ast.Fragment, 0, 64),
	}
	if fatal := p.parseFragments(); fatal != nil {
		p.report(fatal)
		return nil, p.errs, fatal
	}
	return p.frags, p.errs, nil
}

// ParseText parses text held in memory.
func ParseText(text string) ([]ast.Fragment, []*Error, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<text>", []byte(text))
	return Parse(fs.Get(id), nil, Options{})
}

// parseFragments is the top-level loop: comments and entries until EOF.
func (p *Parser) parseFragments() *Error {
	for {
		tok, lexErr := p.peek()
		if lexErr != nil {
			err := fromLex(tok, lexErr)
			if err.Fatal() {
				return err
			}
			p.recover(err, tok.Span.Start)
			continue
		}

		switch {
		case tok.Kind == token.EOF:
			return nil
		case tok.Kind.IsComment():
			p.advance()
			p.frags = append(p.frags, ast.CommentFragment(commentOf(tok), tok.Span))
		case tok.Kind == token.Id:
			entry, err := p.parseEntry()
			if err != nil {
				if err.Fatal() {
					return err
				}
				p.recover(err, entry.Span.Start)
				continue
			}
			p.frags = append(p.frags, ast.EntryFragment(entry))
		default:
			p.recover(&Error{Kind: ExtraToken, Span: tok.Span, Token: tok}, tok.Span.Start)
		}
	}
}

func commentOf(tok token.Token) ast.Comment {
	if tok.Kind == token.EnclosedComment {
		return ast.Comment{Kind: ast.Enclosed, Text: tok.Value}
	}
	return ast.Comment{Kind: ast.EndOfLine, Text: tok.Value}
}
