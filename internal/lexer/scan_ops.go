package lexer

import (
	"semcore/internal/diag"
	"semcore/internal/token"
)

var twoCharOps = map[[2]byte]token.Kind{
	{'=', '>'}: token.Arrow,
	{'+', '+'}: token.PlusPlus,
	{'-', '-'}: token.MinusMinus,
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'<', '<'}: token.Shl,
	{'>', '>'}: token.Shr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
}

var oneCharOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
	'?': token.Question,
	'=': token.Assign,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'!': token.Bang,
	'~': token.Tilde,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'<': token.Lt,
	'>': token.Gt,
}

// scanOperatorOrPunct is greedy: two-character operators win over their
// one-character prefixes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if k, ok := twoCharOps[[2]byte{lx.cursor.Peek(), lx.cursor.PeekAt(1)}]; ok {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return emit(k)
	}
	if k, ok := oneCharOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	lx.cursor.Bump()
	tok := emit(token.Invalid)
	lx.report(diag.LexUnknownChar, tok.Span, "unexpected character "+quote(tok.Text))
	return tok
}
