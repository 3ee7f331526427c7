// Package token defines the lexical tokens of WeiDU translation files.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Token.Value holds the payload with delimiters stripped (string bodies,
//     comment text, sound names); it is empty for Id, TlkRef and operators.
//   - Whitespace is never a token. Comments are tokens, not trivia, because
//     the parser keeps them as fragments.
package token
