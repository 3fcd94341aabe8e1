// Package diag defines the diagnostic model shared by all pipeline stages.
//
// # Purpose
//
//   - Provide deterministic data structures describing a fault found while
//     loading, tokenizing, resolving inclusions or building productions.
//   - Give callers a typed error (*Error) they can branch on by Code or by
//     failure family (Kind), without parsing message text.
//
// # Scope
//
// Package diag does not perform any formatting beyond the one-line short form (short.go),
// and no IO. Rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form
//     (LEX1xxx, SYN2xxx, IO4xxx, INC5xxx, OBS6xxx; see codes.go).
//   - Message – short human oriented text.
//   - Primary – the source.Span pointing at the fault. For unterminated
//     regions this is the span of the opening token.
//   - Notes – optional secondary spans, e.g. the directive that pulled in the
//     file where the fault was found.
//
// # Errors
//
// The pipeline never recovers: the first fault aborts the parse and comes back
// as an *Error, which embeds the Diagnostic and adds the file path and, for IO
// failures, the underlying cause. Code.Kind maps every code onto the failure
// families callers care about (IoError, UnknownKeyword, UnterminatedRegion,
// MalformedInclusion, CyclicInclusion, ...).
//
// Informational diagnostics (timings) go through a Reporter into a Bag, which
// can sort them by location.
package diag
