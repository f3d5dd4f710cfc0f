package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"semcore/internal/diag"
	"semcore/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	path  *color.Color
	caret *color.Color
	note  *color.Color
	dim   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgBlue),
		dim:   mk(color.Faint),
	}
}

// Pretty writes each diagnostic as
//
//	path:line:col: error SEM3005: message
//	   12 | int P => Nope;
//	      |          ^~~~
//	note: path:line:col: text
func Pretty(w io.Writer, ds []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range ds {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	var b strings.Builder
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(&b, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(file, opts.PathMode, opts.BaseDir), start.Line, start.Col),
		p.sev[d.Severity].Sprint(strings.ToLower(d.Severity.String())),
		d.Code.ID(),
		d.Message)
	if file != nil {
		writeSnippet(&b, file, d.Primary, opts.Context, p)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil || n.Span.Empty() {
				fmt.Fprintf(&b, "%s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(&b, "%s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSnippet(b *strings.Builder, f *source.File, sp source.Span, context int, p palette) {
	start, end := f.LineCol(sp.Start), f.LineCol(sp.End)
	first := max(1, int(start.Line)-context)
	last := int(start.Line) + context
	width := len(fmt.Sprint(last))
	last = min(last, len(f.LineIdx)+1)
	for line := first; line <= last; line++ {
		text := f.GetLine(uint32(line))
		fmt.Fprintf(b, "%s %s\n", p.dim.Sprintf(" %*d |", width, line), text)
		if line != int(start.Line) {
			continue
		}
		col := int(start.Col)
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			n = int(end.Col - start.Col)
		}
		pad := strings.Repeat(" ", width+3)
		fmt.Fprintf(b, "%s%s%s\n", p.dim.Sprint(pad), strings.Repeat(" ", col), p.caret.Sprint("^"+strings.Repeat("~", n-1)))
	}
}

// Short writes one "path:line:col: SEV CODE message" line per diagnostic.
func Short(w io.Writer, ds []diag.Diagnostic, fs *source.FileSet, mode PathMode, base string) error {
	for _, d := range ds {
		start, _ := fs.Resolve(d.Primary)
		path := formatPath(fs.Get(d.Primary.File), mode, base)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n", path, start.Line, start.Col, d.Severity, d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
