// Package diag defines the diagnostic model shared by the lexer, parser,
// declaration collector and binder.
//
// Producers never fail on language errors: they emit a Diagnostic through a
// Reporter and keep going with a best-effort result. A Diagnostic carries:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable ID ("SEM3005") and a
//     message key ("ERR_NameNotInContext") that tooling can match on without
//     parsing the human readable Message.
//   - Primary – the source.Span the finding is about.
//   - Notes – optional secondary spans ("declared here").
//
// Bag collects diagnostics and is safe for concurrent use, because semantic
// queries on one snapshot may run on many goroutines at once. Rendering lives
// in internal/diagfmt.
package diag
