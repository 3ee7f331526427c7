package token

import (
	"tradiff/internal/source"
)

// Token represents a single token with its location and decoded payload.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string // raw source slice
	Value string // payload without delimiters
	Int   int64  // Id value
	Uint  uint32 // TlkRef value
}

// IsString reports whether the token is a string literal.
func (t Token) IsString() bool { return t.Kind.IsString() }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind.IsComment() }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// Payload renders the decoded value for dumps and messages.
func (t Token) Payload() string {
	switch t.Kind {
	case Id, TlkRef, Equal, ConcatOperator, EOF:
		return t.Text
	default:
		return t.Value
	}
}
