package parser

import (
	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/token"
)

// parseType parses a keyword type or a (qualified, possibly generic) name.
func (p *Parser) parseType() syntax.NodeID {
	tok := p.cur()
	if tok.Kind.IsPredefinedType() {
		p.advance()
		id := p.node(syntax.KindPredefinedType, tok.Span.Start)
		return p.set(id, tok.Text, tok.Kind, 0)
	}
	if !tok.IsIdentLike() {
		p.err(diag.SynExpectType, "expected type, got "+describe(tok))
		return p.missing()
	}
	left := p.parseSimpleName(true)
	for p.at(token.Dot) && p.peek(1).IsIdentLike() {
		p.advance()
		right := p.parseSimpleName(true)
		left = p.node(syntax.KindQualifiedName, tok.Span.Start, left, right)
	}
	return left
}

// parseQualifiedName parses A.B.C without type arguments.
func (p *Parser) parseQualifiedName() syntax.NodeID {
	start := p.cur().Span.Start
	left := p.parseSimpleName(false)
	for p.at(token.Dot) {
		p.advance()
		right := p.parseSimpleName(false)
		left = p.node(syntax.KindQualifiedName, start, left, right)
	}
	return left
}

// parseSimpleName parses an identifier and, when allowed and well formed,
// a trailing type argument list.
func (p *Parser) parseSimpleName(allowGeneric bool) syntax.NodeID {
	tok, ok := p.expectIdent()
	if !ok {
		return p.missing()
	}
	if allowGeneric && p.at(token.Lt) && p.scanTypeArgs(p.pos) > 0 {
		args := p.parseTypeArgumentList()
		id := p.node(syntax.KindGenericName, tok.Span.Start, args)
		return p.set(id, tok.Text, token.Invalid, 0)
	}
	id := p.node(syntax.KindIdentifierName, tok.Span.Start)
	return p.set(id, tok.Text, token.Invalid, 0)
}

func (p *Parser) parseTypeArgumentList() syntax.NodeID {
	start := p.advance().Span.Start // <
	var args []syntax.NodeID
	for {
		args = append(args, p.parseType())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>'")
	return p.node(syntax.KindTypeArgumentList, start, args...)
}

func (p *Parser) tokAt(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// scanType checks whether a type starts at token index i and returns the
// index just past it, or -1.
func (p *Parser) scanType(i int) int {
	tok := p.tokAt(i)
	if tok.Kind.IsPredefinedType() {
		return i + 1
	}
	if !tok.IsIdentLike() {
		return -1
	}
	i++
	if p.tokAt(i).Kind == token.Lt {
		if j := p.scanTypeArgs(i); j > 0 {
			i = j
		}
	}
	for p.tokAt(i).Kind == token.Dot && p.tokAt(i+1).IsIdentLike() {
		i += 2
		if p.tokAt(i).Kind == token.Lt {
			if j := p.scanTypeArgs(i); j > 0 {
				i = j
			}
		}
	}
	return i
}

// scanTypeArgs checks for `<T1, ..., Tn>` at index i and returns the index
// past '>' or -1.
func (p *Parser) scanTypeArgs(i int) int {
	if p.tokAt(i).Kind != token.Lt {
		return -1
	}
	i++
	for {
		j := p.scanType(i)
		if j < 0 {
			return -1
		}
		i = j
		switch p.tokAt(i).Kind {
		case token.Comma:
			i++
		case token.Gt:
			return i + 1
		default:
			return -1
		}
	}
}
