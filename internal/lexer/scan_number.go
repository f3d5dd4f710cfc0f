package lexer

import (
	"semcore/internal/diag"
	"semcore/internal/token"
)

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanNumber reads integer and real literals. Suffixes stay part of the
// token text; the binder decides the literal's type from them.
//
//	int:  123  0x1F  10L  10U  10UL
//	real: 1.5  .5  1e10  2.5f  3d  1.0m
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(start), "hexadecimal literal has no digits")
		}
		lx.scanIntSuffix()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
	}

	lx.eatDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.RealLit
		lx.cursor.Bump()
		lx.eatDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Off
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.RealLit
			lx.eatDigits()
		} else {
			lx.cursor.Off = save
		}
	}
	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		kind = token.RealLit
		lx.cursor.Bump()
	default:
		if kind == token.IntLit {
			lx.scanIntSuffix()
		}
	}
	if isIdentStart(lx.cursor.Peek()) {
		for isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "invalid numeric literal "+quote(lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

// scanIntSuffix accepts U, L, UL and LU in any case.
func (lx *Lexer) scanIntSuffix() {
	switch lx.cursor.Peek() {
	case 'u', 'U':
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'l' || b == 'L' {
			lx.cursor.Bump()
		}
	case 'l', 'L':
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'u' || b == 'U' {
			lx.cursor.Bump()
		}
	}
}
