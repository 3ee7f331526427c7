package ast

import (
	"strconv"
	"strings"
)

// Delim is the quoting style of a string literal.
type Delim uint8

const (
	DelimTilde Delim = iota
	DelimDoubleQuote
	DelimPercent
	DelimFiveTildes
)

func (d Delim) String() string {
	switch d {
	case DelimTilde:
		return "Tilde"
	case DelimDoubleQuote:
		return "DoubleQuote"
	case DelimPercent:
		return "Percent"
	case DelimFiveTildes:
		return "FiveTildes"
	default:
		return "Delim(" + strconv.Itoa(int(d)) + ")"
	}
}

// Quote returns the characters that open and close a literal of this style.
func (d Delim) Quote() string {
	switch d {
	case DelimDoubleQuote:
		return `"`
	case DelimPercent:
		return "%"
	case DelimFiveTildes:
		return "~~~~~"
	default:
		return "~"
	}
}

// StringLit is a quoted literal. Two literals are equal only when both the
// delimiter and the text match.
type StringLit struct {
	Delim Delim
	Text  string
}

// String re-emits the literal with its original delimiters.
func (s StringLit) String() string {
	q := s.Delim.Quote()
	return q + s.Text + q
}

// StringKind tags the variant held by a WeiduString.
type StringKind uint8

const (
	StrLiteral StringKind = iota
	StrAt
	StrRef
	StrConcat
)

func (k StringKind) String() string {
	switch k {
	case StrLiteral:
		return "Literal"
	case StrAt:
		return "At"
	case StrRef:
		return "Ref"
	case StrConcat:
		return "Concat"
	default:
		return "StringKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// WeiduString is a string expression: a literal, a reference to another
// entry (@id), a reference into the game's dialog table (#ref), or a literal
// appended to another expression with '^'.
//
// Concat is left-recursive: "a ^ b ^ c" is Concat(Concat(a, b), c).
type WeiduString struct {
	Kind StringKind
	Lit  StringLit    // Literal, and the right operand of Concat
	At   int64        // At
	Ref  uint32       // Ref
	Left *WeiduString // Concat
}

// Parts flattens a Concat chain into its head and the literals appended to
// it, in source order.
func (w WeiduString) Parts() (WeiduString, []StringLit) {
	var tail []StringLit
	cur := w
	for cur.Kind == StrConcat && cur.Left != nil {
		tail = append(tail, cur.Lit)
		cur = *cur.Left
	}
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	return cur, tail
}

// Depth counts the Concat nodes in the chain.
func (w WeiduString) Depth() int {
	n := 0
	for cur := &w; cur.Kind == StrConcat && cur.Left != nil; cur = cur.Left {
		n++
	}
	return n
}

func (w WeiduString) Equal(other WeiduString) bool {
	if w.Kind != other.Kind {
		return false
	}
	switch w.Kind {
	case StrLiteral:
		return w.Lit == other.Lit
	case StrAt:
		return w.At == other.At
	case StrRef:
		return w.Ref == other.Ref
	case StrConcat:
		if w.Lit != other.Lit {
			return false
		}
		if w.Left == nil || other.Left == nil {
			return w.Left == other.Left
		}
		return w.Left.Equal(*other.Left)
	}
	return false
}

func (w WeiduString) String() string {
	head, tail := w.Parts()
	var sb strings.Builder
	switch head.Kind {
	case StrAt:
		sb.WriteString("@" + strconv.FormatInt(head.At, 10))
	case StrRef:
		sb.WriteString("#" + strconv.FormatUint(uint64(head.Ref), 10))
	default:
		sb.WriteString(head.Lit.String())
	}
	for _, lit := range tail {
		sb.WriteString(" ^ ")
		sb.WriteString(lit.String())
	}
	return sb.String()
}
