package lexer

import (
	"semcore/internal/diag"
	"semcore/internal/token"
)

// scanString reads a regular "..." literal. The token text keeps the quotes
// and escapes; Unquote decodes it.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + `"`}
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '"' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	n := 0
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Bump()
		if b == '\'' {
			break
		}
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		n++
	}
	sp := lx.cursor.SpanFrom(start)
	if n == 0 {
		lx.report(diag.LexUnterminatedChar, sp, "empty character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
}
