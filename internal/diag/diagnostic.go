package diag

import "semcore/internal/source"

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// ID returns the stable identifier of the diagnostic code.
func (d Diagnostic) ID() string { return d.Code.ID() }

// Key returns the message key of the diagnostic code.
func (d Diagnostic) Key() string { return d.Code.Key() }

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
