// Package diag defines the diagnostic model shared by the lexer, parser and
// comparison phases.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages, e.g. the expected-token set of
//     a syntax error or the earlier definition of a duplicated entry.
//
// # Emitting diagnostics
//
// Producers emit through a Reporter so they do not depend on storage. The
// parser and the duplicate check build Diagnostic values and pass them to
// Emit; the driver collects them per file with a BagReporter wrapped in a
// DedupReporter.
//
// Package diag performs no IO. Rendering lives in internal/diagfmt.
package diag
