package token_test

import (
	"testing"

	"tradiff/internal/token"
)

func TestKindPredicates(t *testing.T) {
	strs := []token.Kind{token.FiveTildeString, token.TildeString, token.DoubleQuoteString, token.PercentString}
	for _, k := range strs {
		if !k.IsString() {
			t.Fatalf("%v should be a string kind", k)
		}
		if k.StartsFragment() {
			t.Fatalf("%v must not start a fragment", k)
		}
	}

	for _, k := range []token.Kind{token.EndOfLineComment, token.EnclosedComment} {
		if !k.IsComment() || !k.StartsFragment() {
			t.Fatalf("%v should be a comment that starts a fragment", k)
		}
	}

	if !token.Id.StartsFragment() {
		t.Fatalf("Id should start a fragment")
	}
	for _, k := range []token.Kind{token.Equal, token.ConcatOperator, token.SoundRef, token.TlkRef, token.EOF, token.Invalid} {
		if k.StartsFragment() {
			t.Fatalf("%v must not start a fragment", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Id:              "Id",
		token.FiveTildeString: "FiveTildeString",
		token.TlkRef:          "TlkRef",
		token.Kind(200):       "Kind(?)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if got := token.TildeString.Describe(); got != "~string~" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestPayload(t *testing.T) {
	id := token.Token{Kind: token.Id, Text: "@12", Int: 12}
	if id.Payload() != "@12" {
		t.Fatalf("Id payload = %q", id.Payload())
	}
	str := token.Token{Kind: token.TildeString, Text: "~abc~", Value: "abc"}
	if str.Payload() != "abc" {
		t.Fatalf("string payload = %q", str.Payload())
	}
}
