package parser

import (
	"fmt"
	"strings"

	"tradiff/internal/diag"
	"tradiff/internal/lexer"
	"tradiff/internal/source"
	"tradiff/internal/token"
)

// ErrorKind classifies a parse error.
type ErrorKind uint8

const (
	// InvalidToken: the lexer found a character no rule accepts.
	InvalidToken ErrorKind = iota
	// UnrecognizedEOF: the input ended inside an entry. Always fatal.
	UnrecognizedEOF
	// UnrecognizedToken: a token that cannot continue the current entry.
	UnrecognizedToken
	// ExtraToken: a token that cannot start a fragment.
	ExtraToken
	// User wraps any other lexical failure. Fatal when the failure is an
	// unterminated delimiter.
	User
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "InvalidToken"
	case UnrecognizedEOF:
		return "UnrecognizedEOF"
	case UnrecognizedToken:
		return "UnrecognizedToken"
	case ExtraToken:
		return "ExtraToken"
	case User:
		return "User"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is a parse error. Recoverable errors are collected in the error list
// passed to Parse; a fatal one is returned as Parse's error.
type Error struct {
	Kind     ErrorKind
	Span     source.Span
	Token    token.Token
	Expected []token.Kind
	Lex      *lexer.Error
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidToken:
		return fmt.Sprintf("invalid token %q", e.Token.Text)
	case UnrecognizedEOF:
		return "unexpected end of file" + e.expectedSuffix()
	case UnrecognizedToken:
		return fmt.Sprintf("unexpected %s %q%s", e.Token.Kind.Describe(), e.Token.Text, e.expectedSuffix())
	case ExtraToken:
		return fmt.Sprintf("extra token %s %q", e.Token.Kind.Describe(), e.Token.Text)
	case User:
		if e.Lex != nil {
			return e.Lex.Error()
		}
		return "lexical error"
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	if e.Lex == nil {
		return nil
	}
	return e.Lex
}

// Fatal reports whether the error stops the whole parse.
func (e *Error) Fatal() bool {
	switch e.Kind {
	case UnrecognizedEOF:
		return true
	case User:
		return e.Lex != nil && e.Lex.Unterminated()
	default:
		return false
	}
}

// ExpectedList renders the expected set, e.g. "'=', ~string~".
func (e *Error) ExpectedList() string {
	parts := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		parts[i] = k.Describe()
	}
	return strings.Join(parts, ", ")
}

func (e *Error) expectedSuffix() string {
	if len(e.Expected) == 0 {
		return ""
	}
	return ", expected one of: " + e.ExpectedList()
}

// Code maps the error to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case InvalidToken:
		return diag.LexInvalidToken
	case UnrecognizedEOF:
		return diag.SynUnexpectedEOF
	case UnrecognizedToken:
		return diag.SynUnexpectedToken
	case ExtraToken:
		return diag.SynExtraToken
	}
	if e.Lex == nil {
		return diag.UnknownCode
	}
	return e.Lex.Code()
}

// fromLex converts a lexical failure met while parsing.
func fromLex(tok token.Token, lexErr *lexer.Error) *Error {
	kind := User
	if lexErr.Kind == lexer.InvalidToken && !lexErr.Unterminated() {
		kind = InvalidToken
	}
	return &Error{Kind: kind, Span: lexErr.Span, Token: tok, Lex: lexErr}
}

func unexpected(tok token.Token, expected ...token.Kind) *Error {
	if tok.Kind == token.EOF {
		return &Error{Kind: UnrecognizedEOF, Span: tok.Span, Token: tok, Expected: expected}
	}
	return &Error{Kind: UnrecognizedToken, Span: tok.Span, Token: tok, Expected: expected}
}
