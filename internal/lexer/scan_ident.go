package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"semcore/internal/diag"
	"semcore/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool { return isIdentStart(b) || isDec(b) }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// scanIdentOrKeyword reads an identifier. Non-ASCII identifiers are NFC
// normalised so that canonically equal spellings resolve to one name.
// A leading '@' makes a verbatim identifier that is never a keyword.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')
	wide := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinue(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)) {
			break
		}
		wide = true
		lx.cursor.Off += uint32(size) //nolint:gosec // size is at most 4
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() == 0 || (verbatim && sp.Len() == 1) {
		// lone '@' or an unrecognised rune: consume one rune so we make progress
		if sp.Len() == 0 {
			_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			lx.cursor.Off += uint32(size) //nolint:gosec // size is at most 4
			sp = lx.cursor.SpanFrom(start)
		}
		lx.report(diag.LexUnknownChar, sp, "unexpected character "+quote(lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	text := lx.text(sp)
	if verbatim {
		text = text[1:]
	}
	if wide {
		text = norm.NFC.String(text)
	}
	if !verbatim {
		if k, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: k, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func quote(s string) string { return "'" + s + "'" }
