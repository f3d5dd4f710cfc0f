package lexer

import (
	"semcore/internal/diag"
	"semcore/internal/token"
)

func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			for b := lx.cursor.Peek(); b == ' ' || b == '\t' || b == '\r'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.push(token.TriviaSpace, start)
		case ch == '\n':
			lx.cursor.Bump()
			lx.push(token.TriviaNewline, start)
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.push(token.TriviaLineComment, start)
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.report(diag.LexUnterminatedBlock, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
			lx.push(token.TriviaBlockComment, start)
		default:
			return
		}
	}
}

func (lx *Lexer) push(kind token.TriviaKind, start uint32) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
