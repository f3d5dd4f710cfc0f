package parser

import (
	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/token"
)

func (p *Parser) parseCompilationUnit() syntax.NodeID {
	start := uint32(0)
	members := p.parseNamespaceBody(token.EOF)
	end := p.cur().Span.End
	p.lastEnd = max(p.lastEnd, end)
	return p.node(syntax.KindCompilationUnit, start, members...)
}

func (p *Parser) parseNamespaceBody(close token.Kind) []syntax.NodeID {
	var members []syntax.NodeID
	for !p.at(close) && !p.at(token.EOF) {
		before := p.pos
		if m := p.parseNamespaceMember(); m.IsValid() {
			members = append(members, m)
		}
		if p.pos == before {
			// nothing consumed: skip the offending token
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur()))
			p.advance()
		}
	}
	return members
}

func (p *Parser) parseNamespaceMember() syntax.NodeID {
	start := p.cur().Span.Start
	switch p.cur().Kind {
	case token.KwUsing:
		p.advance()
		name := p.parseQualifiedName()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
		return p.node(syntax.KindUsingDirective, start, name)
	case token.KwNamespace:
		p.advance()
		name := p.parseQualifiedName()
		p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
		members := p.parseNamespaceBody(token.RBrace)
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
		id := p.node(syntax.KindNamespaceDecl, start, members...)
		return p.set(id, dottedName(p.tree, name), token.Invalid, 0)
	}
	flags := p.parseModifiers()
	if p.atOr(token.KwClass, token.KwStruct, token.KwInterface) {
		return p.parseTypeDecl(start, flags)
	}
	if flags != 0 {
		p.err(diag.SynUnexpectedToken, "expected type declaration after modifiers")
	}
	return syntax.NoNode
}

func dottedName(t *syntax.Tree, id syntax.NodeID) string {
	if t.Kind(id) == syntax.KindQualifiedName {
		return dottedName(t, t.Child(id, 0)) + "." + dottedName(t, t.Child(id, 1))
	}
	return t.Text(id)
}

func (p *Parser) parseModifiers() syntax.Flags {
	var flags syntax.Flags
	for {
		var f syntax.Flags
		switch p.cur().Kind {
		case token.KwPublic:
			f = syntax.FlagPublic
		case token.KwPrivate:
			f = syntax.FlagPrivate
		case token.KwProtected:
			f = syntax.FlagProtected
		case token.KwInternal:
			f = syntax.FlagInternal
		case token.KwStatic:
			f = syntax.FlagStatic
		case token.KwConst:
			f = syntax.FlagConst
		case token.KwExtern:
			f = syntax.FlagExtern
		default:
			return flags
		}
		if flags.Has(f) {
			p.err(diag.SynModifierNotValid, "duplicate modifier "+describe(p.cur()))
		}
		flags |= f
		p.advance()
	}
}

func (p *Parser) parseTypeDecl(start uint32, flags syntax.Flags) syntax.NodeID {
	var kind syntax.Kind
	switch p.advance().Kind {
	case token.KwStruct:
		kind = syntax.KindStructDecl
	case token.KwInterface:
		kind = syntax.KindInterfaceDecl
	default:
		kind = syntax.KindClassDecl
	}
	if flags.Has(syntax.FlagConst | syntax.FlagExtern) {
		p.err(diag.SynModifierNotValid, "modifier is not valid on a type declaration")
	}
	nameTok, _ := p.expectIdent()

	typeParams := syntax.NoNode
	if p.at(token.Lt) {
		typeParams = p.parseTypeParameterList()
	}
	bases := syntax.NoNode
	if p.at(token.Colon) {
		bstart := p.advance().Span.Start
		var list []syntax.NodeID
		for {
			list = append(list, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
		bases = p.node(syntax.KindBaseList, bstart, list...)
	}

	children := []syntax.NodeID{typeParams, bases}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			before := p.pos
			if m := p.parseMember(nameTok.Text); m.IsValid() {
				children = append(children, m)
			}
			if p.pos == before {
				p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur())+" in type body")
				p.advance()
			}
		}
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	}
	p.eat(token.Semicolon)
	id := p.node(kind, start, children...)
	return p.set(id, nameTok.Text, token.Invalid, flags)
}

func (p *Parser) expectIdent() (token.Token, bool) {
	if p.cur().IsIdentLike() {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(p.cur()))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *Parser) parseMember(typeName string) syntax.NodeID {
	start := p.cur().Span.Start
	flags := p.parseModifiers()

	switch {
	case p.atOr(token.KwClass, token.KwStruct, token.KwInterface):
		return p.parseTypeDecl(start, flags)
	case p.atOr(token.KwImplicit, token.KwExplicit):
		return p.parseConversionDecl(start, flags)
	case p.cur().Kind == token.Ident && p.cur().Text == typeName && p.peek(1).Kind == token.LParen:
		name := p.advance().Text
		params := p.parseParameterList(token.LParen, token.RParen)
		body := p.parseBody()
		id := p.node(syntax.KindConstructorDecl, start, params, body)
		return p.set(id, name, token.Invalid, flags)
	}

	typ := p.parseType()
	if p.at(token.KwOperator) {
		return p.parseOperatorDecl(start, flags, typ)
	}
	if p.at(token.KwThis) {
		return p.parseIndexerDecl(start, flags, typ)
	}
	nameTok, ok := p.expectIdent()
	if !ok {
		p.resync(token.Semicolon)
		p.eat(token.Semicolon)
		return syntax.NoNode
	}
	switch p.cur().Kind {
	case token.LParen, token.Lt:
		return p.parseMethodDecl(start, flags, typ, nameTok.Text)
	case token.LBrace:
		accessors := p.parseAccessorList()
		id := p.node(syntax.KindPropertyDecl, start, typ, accessors, syntax.NoNode)
		return p.set(id, nameTok.Text, token.Invalid, flags)
	case token.Arrow:
		body := p.parseArrowBody()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
		id := p.node(syntax.KindPropertyDecl, start, typ, syntax.NoNode, body)
		return p.set(id, nameTok.Text, token.Invalid, flags)
	}
	return p.parseFieldRest(start, flags, typ, nameTok)
}

func (p *Parser) parseFieldRest(start uint32, flags syntax.Flags, typ syntax.NodeID, first token.Token) syntax.NodeID {
	children := []syntax.NodeID{typ, p.parseDeclaratorRest(first)}
	for p.eat(token.Comma) {
		tok, ok := p.expectIdent()
		if !ok {
			break
		}
		children = append(children, p.parseDeclaratorRest(tok))
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'"); !ok {
		p.resync(token.Semicolon)
		p.eat(token.Semicolon)
	}
	id := p.node(syntax.KindFieldDecl, start, children...)
	return p.set(id, "", token.Invalid, flags)
}

// parseDeclaratorRest parses `= init` after an already consumed name.
func (p *Parser) parseDeclaratorRest(name token.Token) syntax.NodeID {
	init := syntax.NoNode
	if p.eat(token.Assign) {
		init = p.parseExpr()
	}
	id := p.node(syntax.KindVariableDeclarator, name.Span.Start, init)
	return p.set(id, name.Text, token.Invalid, 0)
}

func (p *Parser) parseMethodDecl(start uint32, flags syntax.Flags, ret syntax.NodeID, name string) syntax.NodeID {
	typeParams := syntax.NoNode
	if p.at(token.Lt) {
		typeParams = p.parseTypeParameterList()
	}
	params := p.parseParameterList(token.LParen, token.RParen)
	constraints := syntax.NoNode
	if p.at(token.KwWhere) {
		constraints = p.parseConstraints()
	}
	body := p.parseBody()
	id := p.node(syntax.KindMethodDecl, start, ret, typeParams, params, constraints, body)
	return p.set(id, name, token.Invalid, flags)
}

func (p *Parser) parseOperatorDecl(start uint32, flags syntax.Flags, ret syntax.NodeID) syntax.NodeID {
	p.advance() // operator
	opTok := p.cur()
	if !isOverloadableOperator(opTok.Kind) {
		p.err(diag.SynUnexpectedToken, "expected overloadable operator, got "+describe(opTok))
	} else {
		p.advance()
	}
	params := p.parseParameterList(token.LParen, token.RParen)
	body := p.parseBody()
	id := p.node(syntax.KindOperatorDecl, start, ret, params, body)
	return p.set(id, opTok.Kind.String(), opTok.Kind, flags)
}

func isOverloadableOperator(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.PlusPlus, token.MinusMinus, token.Bang, token.Tilde,
		token.Amp, token.Pipe, token.Caret, token.Shl, token.Shr,
		token.EqEq, token.BangEq, token.Lt, token.Gt, token.LtEq, token.GtEq,
		token.KwTrue, token.KwFalse:
		return true
	}
	return false
}

func (p *Parser) parseConversionDecl(start uint32, flags syntax.Flags) syntax.NodeID {
	if p.advance().Kind == token.KwImplicit {
		flags |= syntax.FlagImplicit
	} else {
		flags |= syntax.FlagExplicit
	}
	p.expect(token.KwOperator, diag.SynUnexpectedToken, "expected 'operator'")
	target := p.parseType()
	params := p.parseParameterList(token.LParen, token.RParen)
	body := p.parseBody()
	id := p.node(syntax.KindConversionDecl, start, target, params, body)
	return p.set(id, "", token.Invalid, flags)
}

func (p *Parser) parseIndexerDecl(start uint32, flags syntax.Flags, typ syntax.NodeID) syntax.NodeID {
	p.advance() // this
	params := p.parseParameterList(token.LBracket, token.RBracket)
	accessors, body := syntax.NoNode, syntax.NoNode
	if p.at(token.Arrow) {
		body = p.parseArrowBody()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
	} else {
		accessors = p.parseAccessorList()
	}
	id := p.node(syntax.KindIndexerDecl, start, typ, params, accessors, body)
	return p.set(id, "this[]", token.Invalid, flags)
}

func (p *Parser) parseAccessorList() syntax.NodeID {
	start := p.cur().Span.Start
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return syntax.NoNode
	}
	var accessors []syntax.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		astart := p.cur().Span.Start
		flags := p.parseModifiers()
		if !p.atOr(token.KwGet, token.KwSet) {
			p.err(diag.SynUnexpectedToken, "expected 'get' or 'set', got "+describe(p.cur()))
			p.resync(token.Semicolon)
			p.eat(token.Semicolon)
			continue
		}
		name := p.advance().Text
		body := p.parseBody()
		id := p.node(syntax.KindAccessorDecl, astart, body)
		accessors = append(accessors, p.set(id, name, token.Invalid, flags))
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	return p.node(syntax.KindAccessorList, start, accessors...)
}

// parseBody accepts a block, `=> expr;` or a bare `;` (no body).
func (p *Parser) parseBody() syntax.NodeID {
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Arrow:
		body := p.parseArrowBody()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
		return body
	case token.Semicolon:
		p.advance()
		return syntax.NoNode
	}
	p.err(diag.SynExpectBody, "expected '{', '=>' or ';', got "+describe(p.cur()))
	p.resync(token.Semicolon)
	p.eat(token.Semicolon)
	return syntax.NoNode
}

func (p *Parser) parseArrowBody() syntax.NodeID {
	start := p.advance().Span.Start
	expr := p.parseExpr()
	return p.node(syntax.KindArrowBody, start, expr)
}

func (p *Parser) parseParameterList(open, close token.Kind) syntax.NodeID {
	start := p.cur().Span.Start
	if _, ok := p.expect(open, diag.SynUnexpectedToken, "expected '"+open.String()+"'"); !ok {
		return p.node(syntax.KindParameterList, start)
	}
	var params []syntax.NodeID
	for !p.at(close) && !p.at(token.EOF) {
		pstart := p.cur().Span.Start
		typ := p.parseType()
		name, ok := p.expectIdent()
		id := p.node(syntax.KindParameter, pstart, typ)
		params = append(params, p.set(id, name.Text, token.Invalid, 0))
		if !ok {
			p.resync(token.Comma, close)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(close, diag.SynUnclosedDelimiter, "expected '"+close.String()+"'")
	return p.node(syntax.KindParameterList, start, params...)
}

func (p *Parser) parseTypeParameterList() syntax.NodeID {
	start := p.advance().Span.Start // <
	var params []syntax.NodeID
	for {
		tok, ok := p.expectIdent()
		if !ok {
			break
		}
		id := p.node(syntax.KindTypeParameter, tok.Span.Start)
		params = append(params, p.set(id, tok.Text, token.Invalid, 0))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>'")
	return p.node(syntax.KindTypeParameterList, start, params...)
}

// parseConstraints parses one or more `where T : c1, c2` clauses.
func (p *Parser) parseConstraints() syntax.NodeID {
	start := p.cur().Span.Start
	var clauses []syntax.NodeID
	for p.at(token.KwWhere) {
		cstart := p.advance().Span.Start
		name, _ := p.expectIdent()
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'")
		var cons []syntax.NodeID
		for {
			switch {
			case p.at(token.KwClass):
				s := p.advance().Span.Start
				cons = append(cons, p.node(syntax.KindClassConstraint, s))
			case p.at(token.KwStruct):
				s := p.advance().Span.Start
				cons = append(cons, p.node(syntax.KindStructConstraint, s))
			default:
				cons = append(cons, p.parseType())
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		id := p.node(syntax.KindConstraintClause, cstart, cons...)
		clauses = append(clauses, p.set(id, name.Text, token.Invalid, 0))
	}
	return p.node(syntax.KindConstraintList, start, clauses...)
}
