package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"tradiff/internal/diag"
	"tradiff/internal/source"
)

// ErrorKind classifies a lexical failure.
type ErrorKind uint8

const (
	Unspecified ErrorKind = iota
	// IntegerOverflow: the digits of an @id or #tlk do not fit the target type.
	IntegerOverflow
	// InvalidDigit: a numeric token contains something other than digits.
	InvalidDigit
	// InvalidInteger: any other numeric conversion failure; Detail explains.
	InvalidInteger
	// InvalidToken: no rule matches at this position.
	InvalidToken
)

func (k ErrorKind) String() string {
	switch k {
	case IntegerOverflow:
		return "IntegerOverflow"
	case InvalidDigit:
		return "InvalidDigit"
	case InvalidInteger:
		return "InvalidInteger"
	case InvalidToken:
		return "InvalidToken"
	default:
		return "Unspecified"
	}
}

// Error is a per-token lexical failure. After it is returned the lexer is
// positioned past the offending input, so calling Next again resumes lexing.
type Error struct {
	Kind   ErrorKind
	Span   source.Span
	Detail string
	// Unclosed holds the opening delimiter of a string, comment or sound tag
	// that never closes. Such an error swallows the rest of the file, so the
	// parser treats it as fatal outside of error recovery.
	Unclosed string
}

func (e *Error) Error() string {
	switch {
	case e.Unclosed != "":
		return fmt.Sprintf("unterminated %s opened at offset %d", e.Unclosed, e.Span.Start)
	case e.Kind == InvalidInteger && e.Detail != "":
		return fmt.Sprintf("invalid integer %s", e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("%s %q", e.Kind, e.Detail)
	default:
		return e.Kind.String()
	}
}

// Unterminated reports whether the error is a missing closing delimiter.
func (e *Error) Unterminated() bool {
	return e.Unclosed != ""
}

// Code maps the error to its diagnostic code.
func (e *Error) Code() diag.Code {
	if e.Unterminated() {
		return diag.LexUnterminated
	}
	switch e.Kind {
	case IntegerOverflow:
		return diag.LexIntegerOverflow
	case InvalidDigit:
		return diag.LexInvalidDigit
	case InvalidInteger:
		return diag.LexInvalidInteger
	default:
		return diag.LexInvalidToken
	}
}

// numError converts a strconv failure to a lexical error kind.
func numError(err error, text string, sp source.Span) *Error {
	kind := InvalidInteger
	detail := text
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		switch {
		case errors.Is(numErr.Err, strconv.ErrRange):
			kind = IntegerOverflow
		case errors.Is(numErr.Err, strconv.ErrSyntax):
			kind = InvalidDigit
		default:
			detail = fmt.Sprintf("%s: %v", text, numErr.Err)
		}
	}
	return &Error{Kind: kind, Span: sp, Detail: detail}
}
