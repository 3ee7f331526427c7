// Package fuzztests houses Go fuzz harnesses for the lexer and parser. They
// guard against panics and hangs on arbitrary input, including error recovery
// paths.
//
// Dependencies: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/testkit.
package fuzztests
