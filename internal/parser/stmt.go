package parser

import (
	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/token"
)

func (p *Parser) parseBlock() syntax.NodeID {
	start := p.advance().Span.Start // {
	var stmts []syntax.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if s := p.parseStatement(); s.IsValid() {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur()))
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	return p.node(syntax.KindBlock, start, stmts...)
}

func (p *Parser) parseStatement() syntax.NodeID {
	start := p.cur().Span.Start
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return syntax.NoNode
	case token.KwReturn:
		p.advance()
		expr := syntax.NoNode
		if !p.at(token.Semicolon) {
			expr = p.parseExpr()
		}
		p.expectSemicolon()
		return p.node(syntax.KindReturnStmt, start, expr)
	case token.KwIf:
		p.advance()
		p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
		cond := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		then := p.parseEmbedded()
		els := syntax.NoNode
		if p.eat(token.KwElse) {
			els = p.parseEmbedded()
		}
		return p.node(syntax.KindIfStmt, start, cond, then, els)
	}
	if p.atLocalDecl() {
		return p.parseLocalDecl()
	}
	expr := p.parseExpr()
	p.expectSemicolon()
	return p.node(syntax.KindExprStmt, start, expr)
}

// parseEmbedded parses an if branch; an empty statement becomes an empty block.
func (p *Parser) parseEmbedded() syntax.NodeID {
	start := p.cur().Span.Start
	if s := p.parseStatement(); s.IsValid() {
		return s
	}
	return p.node(syntax.KindBlock, start)
}

func (p *Parser) expectSemicolon() {
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'"); !ok {
		p.resync(token.Semicolon)
		p.eat(token.Semicolon)
	}
}

// atLocalDecl reports `var x`, or `Type x` followed by '=', ';' or ','.
func (p *Parser) atLocalDecl() bool {
	if p.at(token.KwVar) && p.peek(1).IsIdentLike() {
		return true
	}
	j := p.scanType(p.pos)
	if j < 0 || !p.tokAt(j).IsIdentLike() {
		return false
	}
	switch p.tokAt(j + 1).Kind {
	case token.Assign, token.Semicolon, token.Comma:
		return true
	}
	return false
}

func (p *Parser) parseLocalDecl() syntax.NodeID {
	start := p.cur().Span.Start
	var typ syntax.NodeID
	if p.at(token.KwVar) {
		tok := p.advance()
		typ = p.set(p.node(syntax.KindVarType, tok.Span.Start), "var", token.KwVar, 0)
	} else {
		typ = p.parseType()
	}
	children := []syntax.NodeID{typ}
	for {
		name, ok := p.expectIdent()
		if !ok {
			break
		}
		children = append(children, p.parseDeclaratorRest(name))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectSemicolon()
	return p.node(syntax.KindLocalDecl, start, children...)
}
