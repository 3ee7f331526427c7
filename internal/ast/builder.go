package ast

func Tilde(text string) StringLit      { return StringLit{Delim: DelimTilde, Text: text} }
func DQuote(text string) StringLit     { return StringLit{Delim: DelimDoubleQuote, Text: text} }
func Percent(text string) StringLit    { return StringLit{Delim: DelimPercent, Text: text} }
func FiveTildes(text string) StringLit { return StringLit{Delim: DelimFiveTildes, Text: text} }

func Lit(lit StringLit) WeiduString {
	return WeiduString{Kind: StrLiteral, Lit: lit}
}

func AtRef(id int64) WeiduString {
	return WeiduString{Kind: StrAt, At: id}
}

func TlkRef(ref uint32) WeiduString {
	return WeiduString{Kind: StrRef, Ref: ref}
}

// Concat appends lit to left.
func Concat(left WeiduString, lit StringLit) WeiduString {
	l := left
	return WeiduString{Kind: StrConcat, Lit: lit, Left: &l}
}

// Chain builds head ^ tail[0] ^ tail[1] ...
func Chain(head WeiduString, tail ...StringLit) WeiduString {
	out := head
	for _, lit := range tail {
		out = Concat(out, lit)
	}
	return out
}

// Simplest is an entry with a single literal and nothing else.
func Simplest(lit StringLit) ExplicitEntry {
	return ExplicitEntry{Value: Lit(lit)}
}

func WithSound(lit StringLit, sound string) ExplicitEntry {
	return ExplicitEntry{Value: Lit(lit), Sound: &sound}
}

// WithAlt is an entry with a female variant.
func WithAlt(lit, alt StringLit) ExplicitEntry {
	altValue := Lit(alt)
	return ExplicitEntry{Value: Lit(lit), AltValue: &altValue}
}

// NewExplicit builds a full entry body. Empty sound names mean "absent";
// altSound is dropped when alt is nil.
func NewExplicit(value WeiduString, sound string, alt *WeiduString, altSound string) ExplicitEntry {
	e := ExplicitEntry{Value: value}
	if sound != "" {
		e.Sound = &sound
	}
	if alt != nil {
		a := *alt
		e.AltValue = &a
		if altSound != "" {
			e.AltSound = &altSound
		}
	}
	return e
}
