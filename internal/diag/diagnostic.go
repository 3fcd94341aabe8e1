package diag

import (
	"mmfront/internal/source"
)

// Note points at a secondary location, such as the inclusion directive that
// pulled in the file a fault was found in.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one report about a database.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span // for unterminated regions, the opening token
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns d with one more note; d's own notes are not shared.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}
