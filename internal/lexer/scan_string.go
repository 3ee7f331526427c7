package lexer

import (
	"tradiff/internal/source"
	"tradiff/internal/token"
)

const fiveTildes = "~~~~~"

// scanFiveTildes lexes ~~~~~body~~~~~. The closer is taken from the first run
// of at least five tildes after the opener; up to four tildes of that run stay
// in the body. ok is false when no closer exists, letting the caller fall back
// to the single-tilde rule.
func (lx *Lexer) scanFiveTildes() (token.Token, bool) {
	start := lx.cursor.Mark()
	content := lx.file.Content
	bodyStart := lx.cursor.Off + uint32(len(fiveTildes))

	i := bodyStart
	for i < lx.cursor.Limit {
		if content[i] != '~' {
			i++
			continue
		}
		run := i
		for run < lx.cursor.Limit && content[run] == '~' {
			run++
		}
		n := run - i
		if n < 5 {
			i = run
			continue
		}
		bodyEnd := i
		if keep := n - 5; keep <= 4 {
			bodyEnd += keep
		}
		lx.cursor.Reset(Mark(bodyEnd + uint32(len(fiveTildes))))
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind:  token.FiveTildeString,
			Span:  sp,
			Text:  lx.text(sp),
			Value: string(content[bodyStart:bodyEnd]),
		}, true
	}
	return token.Token{}, false
}

// scanDelimited lexes a string whose body runs to the next close byte,
// newlines included.
func (lx *Lexer) scanDelimited(kind token.Kind, delim byte) (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	end := lx.cursor.IndexByte(delim)
	if end < 0 {
		return lx.unclosed(start, string(delim))
	}
	bodyStart := lx.cursor.Off
	lx.cursor.BumpN(uint32(end) + 1) // #nosec G115 -- end < Limit
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  kind,
		Span:  sp,
		Text:  lx.text(sp),
		Value: string(lx.file.Content[bodyStart : sp.End-1]),
	}, nil
}

// scanSoundRef lexes [name]. An empty [] is not a sound tag.
func (lx *Lexer) scanSoundRef() (token.Token, error) {
	if lx.cursor.PeekAt(1) == ']' {
		return lx.invalid()
	}
	return lx.scanBracketed()
}

func (lx *Lexer) scanBracketed() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	end := lx.cursor.IndexByte(']')
	if end < 0 {
		return lx.unclosed(start, "[")
	}
	bodyStart := lx.cursor.Off
	lx.cursor.BumpN(uint32(end) + 1) // #nosec G115 -- end < Limit
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  token.SoundRef,
		Span:  sp,
		Text:  lx.text(sp),
		Value: string(lx.file.Content[bodyStart : sp.End-1]),
	}, nil
}

// unclosed reports an opening delimiter without a partner. Only the first byte
// of the delimiter is consumed, so a restarted lexer sees the rest.
func (lx *Lexer) unclosed(start Mark, delim string) (token.Token, error) {
	lx.cursor.Reset(start)
	lx.cursor.Bump()
	sp := source.Span{File: lx.file.ID, Start: uint32(start), End: uint32(start) + uint32(len(delim))}
	return token.Token{Kind: token.Invalid, Span: sp, Text: delim},
		&Error{Kind: InvalidToken, Span: sp, Detail: delim, Unclosed: delim}
}
