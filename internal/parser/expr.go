package parser

import (
	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/token"
)

const (
	precLogicalOr = iota + 1
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precComparison
	precShift
	precAdditive
	precMultiplicative
)

func binaryPrec(k token.Kind) int {
	switch k {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.Gt, token.LtEq, token.GtEq:
		return precComparison
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	}
	return -1
}

// parseExpr parses an assignment-level expression, lambdas included.
func (p *Parser) parseExpr() syntax.NodeID {
	if p.atLambda() {
		return p.parseLambda()
	}
	start := p.cur().Span.Start
	left := p.parseConditional()
	if p.at(token.Assign) {
		p.advance()
		right := p.parseExpr()
		return p.node(syntax.KindAssignment, start, left, right)
	}
	return left
}

func (p *Parser) parseConditional() syntax.NodeID {
	start := p.cur().Span.Start
	cond := p.parseBinary(precLogicalOr)
	if !p.at(token.Question) {
		return cond
	}
	p.advance()
	whenTrue := p.parseExpr()
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'")
	whenFalse := p.parseExpr()
	return p.node(syntax.KindConditional, start, cond, whenTrue, whenFalse)
}

// parseBinary is precedence climbing over left-associative operators.
func (p *Parser) parseBinary(minPrec int) syntax.NodeID {
	start := p.cur().Span.Start
	left := p.parseUnary()
	for {
		op := p.cur().Kind
		prec := binaryPrec(op)
		if prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = p.set(p.node(syntax.KindBinary, start, left, right), op.String(), op, 0)
	}
}

func (p *Parser) parseUnary() syntax.NodeID {
	start := p.cur().Span.Start
	switch op := p.cur().Kind; op {
	case token.Plus, token.Minus, token.Bang, token.Tilde, token.PlusPlus, token.MinusMinus:
		p.advance()
		operand := p.parseUnary()
		return p.set(p.node(syntax.KindPrefixUnary, start, operand), op.String(), op, 0)
	case token.LParen:
		if p.atCast() {
			p.advance()
			typ := p.parseType()
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
			operand := p.parseUnary()
			return p.node(syntax.KindCast, start, typ, operand)
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

// atCast decides `(T)x`: a keyword type always casts; a name casts only when
// followed by a token that cannot continue a binary expression.
func (p *Parser) atCast() bool {
	j := p.scanType(p.pos + 1)
	if j < 0 || p.tokAt(j).Kind != token.RParen {
		return false
	}
	if p.tokAt(p.pos + 1).Kind.IsPredefinedType() && j == p.pos+2 {
		return true
	}
	next := p.tokAt(j + 1)
	switch {
	case next.IsIdentLike(), next.IsLiteral():
		return true
	case next.Kind.IsPredefinedType():
		return true
	}
	switch next.Kind {
	case token.LParen, token.KwThis, token.KwBase, token.KwNew, token.Bang, token.Tilde:
		return true
	}
	return false
}

// atLambda recognises `x =>` and `( ... ) =>`.
func (p *Parser) atLambda() bool {
	if p.cur().IsIdentLike() && p.peek(1).Kind == token.Arrow {
		return true
	}
	if !p.at(token.LParen) {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return p.tokAt(i+1).Kind == token.Arrow
			}
		case token.EOF, token.Semicolon, token.LBrace, token.RBrace:
			return false
		}
	}
	return false
}

func (p *Parser) parseLambda() syntax.NodeID {
	start := p.cur().Span.Start
	var params syntax.NodeID
	var flags syntax.Flags
	if p.at(token.LParen) {
		flags = syntax.FlagParenLambda
		pstart := p.advance().Span.Start
		var list []syntax.NodeID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			qstart := p.cur().Span.Start
			typ := syntax.NoNode
			// explicitly typed when a name follows the type
			if j := p.scanType(p.pos); j > 0 && p.tokAt(j).IsIdentLike() {
				typ = p.parseType()
			}
			name, _ := p.expectIdent()
			list = append(list, p.set(p.node(syntax.KindParameter, qstart, typ), name.Text, token.Invalid, 0))
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		params = p.node(syntax.KindParameterList, pstart, list...)
	} else {
		name := p.advance()
		param := p.set(p.node(syntax.KindParameter, name.Span.Start, syntax.NoNode), name.Text, token.Invalid, 0)
		params = p.node(syntax.KindParameterList, name.Span.Start, param)
	}
	p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>'")
	var body syntax.NodeID
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		body = p.parseExpr()
	}
	return p.set(p.node(syntax.KindLambda, start, params, body), "", token.Invalid, flags)
}

func (p *Parser) parsePrimary() syntax.NodeID {
	tok := p.cur()
	start := tok.Span.Start
	switch {
	case tok.IsLiteral():
		p.advance()
		return p.set(p.node(syntax.KindLiteral, start), tok.Text, tok.Kind, 0)
	case tok.IsIdentLike():
		return p.parseNameExpr()
	case tok.Kind.IsPredefinedType():
		// int.Parse, string.Empty
		p.advance()
		return p.set(p.node(syntax.KindPredefinedType, start), tok.Text, tok.Kind, 0)
	}
	switch tok.Kind {
	case token.KwThis:
		p.advance()
		return p.node(syntax.KindThis, start)
	case token.KwBase:
		p.advance()
		return p.node(syntax.KindBase, start)
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return p.node(syntax.KindParenthesized, start, inner)
	case token.KwNew:
		p.advance()
		typ := p.parseType()
		args := p.parseArgumentList(token.LParen, token.RParen)
		return p.node(syntax.KindObjectCreation, start, typ, args)
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	if tok.Kind == token.Invalid {
		p.advance()
	}
	return p.missing()
}

// parseNameExpr parses an identifier or a generic name. In expression
// position `a<b>` is generic only if the closing '>' is followed by a token
// that cannot start an operand.
func (p *Parser) parseNameExpr() syntax.NodeID {
	tok := p.advance()
	if p.at(token.Lt) {
		if j := p.scanTypeArgs(p.pos); j > 0 {
			switch p.tokAt(j).Kind {
			case token.LParen, token.RParen, token.RBracket, token.Semicolon, token.Comma,
				token.Dot, token.Colon, token.Question, token.EqEq, token.BangEq, token.EOF:
				args := p.parseTypeArgumentList()
				return p.set(p.node(syntax.KindGenericName, tok.Span.Start, args), tok.Text, token.Invalid, 0)
			}
		}
	}
	return p.set(p.node(syntax.KindIdentifierName, tok.Span.Start), tok.Text, token.Invalid, 0)
}

func (p *Parser) parsePostfix(expr syntax.NodeID) syntax.NodeID {
	start := p.tree.Span(expr).Start
	for {
		switch op := p.cur().Kind; op {
		case token.Dot:
			p.advance()
			var name syntax.NodeID
			if p.cur().IsIdentLike() {
				name = p.parseNameExpr()
			} else {
				p.err(diag.SynExpectIdentifier, "expected member name, got "+describe(p.cur()))
				name = p.missing()
			}
			expr = p.node(syntax.KindMemberAccess, start, expr, name)
		case token.LParen:
			args := p.parseArgumentList(token.LParen, token.RParen)
			expr = p.node(syntax.KindInvocation, start, expr, args)
		case token.LBracket:
			args := p.parseArgumentList(token.LBracket, token.RBracket)
			expr = p.node(syntax.KindElementAccess, start, expr, args)
		case token.PlusPlus, token.MinusMinus:
			p.advance()
			expr = p.set(p.node(syntax.KindPostfixUnary, start, expr), op.String(), op, 0)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgumentList(open, close token.Kind) syntax.NodeID {
	start := p.cur().Span.Start
	if _, ok := p.expect(open, diag.SynUnexpectedToken, "expected '"+open.String()+"'"); !ok {
		return p.node(syntax.KindArgumentList, start)
	}
	var args []syntax.NodeID
	for !p.at(close) && !p.at(token.EOF) {
		args = append(args, p.parseExpr())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(close, diag.SynUnclosedDelimiter, "expected '"+close.String()+"'")
	return p.node(syntax.KindArgumentList, start, args...)
}
