package diag

import (
	"rplc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Detail   Detail
	Notes    []Note
}

// New builds a Diagnostic from a rule Detail and the span of the JSON
// node that triggered it. Severity, code and message all come from the
// detail; the help text is attached as a note on the same span.
func New(d Detail, primary source.Span) Diagnostic {
	diag := Diagnostic{
		Severity: d.Severity(),
		Code:     d.Code(),
		Message:  d.Message(),
		Primary:  primary,
		Detail:   d,
	}
	if help := d.Help(); help != "" {
		diag.Notes = append(diag.Notes, Note{Span: primary, Msg: help})
	}
	return diag
}

// WithNote returns a copy of the diagnostic with an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
