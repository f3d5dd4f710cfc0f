package diagfmt

import (
	"encoding/json"
	"io"

	"semcore/internal/diag"
	"semcore/internal/source"
)

type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Key      string       `json:"key"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func location(sp source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs.Get(sp.File), opts.PathMode, opts.BaseDir),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if opts.IncludePositions {
		start, end := fs.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildJSON converts ds without writing them. Count is the number of
// diagnostics before truncation to opts.Max.
func BuildJSON(ds []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Count: len(ds), Diagnostics: []DiagnosticJSON{}}
	if opts.Max > 0 && len(ds) > opts.Max {
		ds = ds[:opts.Max]
	}
	for _, d := range ds {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Key:      d.Code.Key(),
			Message:  d.Message,
			Location: location(d.Primary, fs, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: location(n.Span, fs, opts)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes ds as one indented DiagnosticsOutput document.
func JSON(w io.Writer, ds []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSON(ds, fs, opts))
}
