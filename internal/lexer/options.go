package lexer

import (
	"semcore/internal/diag"
	"semcore/internal/source"
)

type Options struct {
	// Reporter may be nil; lexing continues after errors either way.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
