package diagfmt

import (
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"

	"tradiff/internal/source"
	"tradiff/internal/token"
)

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Value  string      `json:"value,omitempty"`
	Span   source.Span `json:"span"`
	NotNFC bool        `json:"not_nfc,omitempty"`
}

// notNFC flags string payloads that are not in Unicode normalization form C.
// Such strings compare unequal to visually identical text in the game.
func notNFC(tok token.Token) bool {
	return tok.IsString() && !norm.NFC.IsNormalString(tok.Value)
}

// FormatTokensPretty writes one token per line.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if payload := tok.Payload(); payload != "" {
			fmt.Fprintf(w, " %q", payload)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if notNFC(tok) {
			fmt.Fprint(w, " (not NFC)")
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Span:   tok.Span,
			NotNFC: notNFC(tok),
		}
		if tok.IsString() || tok.IsComment() {
			out.Value = tok.Value
		}
		output = append(output, out)

		if tok.Kind == token.EOF {
			break
		}
	}
	return encodeJSON(w, output)
}
