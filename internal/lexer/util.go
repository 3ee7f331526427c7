package lexer

import (
	"unicode/utf8"
)

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// bumpRune advances over one UTF-8 sequence; invalid bytes count as one rune.
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		lx.cursor.Bump()
		return
	}
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	lx.cursor.BumpN(uint32(sz)) // #nosec G115 -- sz is at most utf8.UTFMax
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// isWordByte matches bytes that glue onto a number and make it malformed: "@12a".
func isWordByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || isDec(b) || b >= utf8.RuneSelf
}
