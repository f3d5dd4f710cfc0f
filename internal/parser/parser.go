package parser

import (
	"slices"

	"semcore/internal/diag"
	"semcore/internal/lexer"
	"semcore/internal/source"
	"semcore/internal/syntax"
	"semcore/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for one file. Tokens are buffered up front so
// casts, lambdas and generic names can be disambiguated by lookahead.
type Parser struct {
	file    *source.File
	tree    *syntax.Tree
	toks    []token.Token
	pos     int
	lastEnd uint32
	opts    Options
}

// ParseFile parses a whole compilation unit.
func ParseFile(file *source.File, opts Options) *syntax.Tree {
	p := newParser(file, opts)
	p.tree.Root = p.parseCompilationUnit()
	return p.tree
}

// ParseExpression parses file as a single expression. Trailing tokens are
// reported and ignored.
func ParseExpression(file *source.File, opts Options) *syntax.Tree {
	p := newParser(file, opts)
	start := p.cur().Span.Start
	expr := p.parseExpr()
	if !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur())+" after expression")
	}
	p.tree.Root = p.node(syntax.KindCompilationUnit, start, expr)
	return p.tree
}

func newParser(file *source.File, opts Options) *Parser {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return &Parser{
		file: file,
		tree: syntax.NewTree(file, uint(len(file.Content)/2)),
		toks: lx.All(),
		opts: opts,
	}
}

func (p *Parser) cur() token.Token { return p.peek(0) }

// peek returns the token n positions ahead; past the end it yields EOF.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.cur().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg+", got "+describe(p.cur()))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// node allocates a node spanning from start to the end of the last
// consumed token, widened to cover its children.
func (p *Parser) node(kind syntax.Kind, start uint32, children ...syntax.NodeID) syntax.NodeID {
	end := p.lastEnd
	for _, c := range children {
		if c.IsValid() {
			if cs := p.tree.Span(c); cs.Start < start {
				start = cs.Start
			}
		}
	}
	if end < start {
		end = start
	}
	return p.tree.New(kind, source.Span{File: p.file.ID, Start: start, End: end}, children...)
}

func (p *Parser) set(id syntax.NodeID, text string, op token.Kind, flags syntax.Flags) syntax.NodeID {
	n := p.tree.Node(id)
	n.Text = text
	n.Op = op
	n.Flags = flags
	return id
}

// missing produces an empty placeholder just past the last consumed token.
func (p *Parser) missing() syntax.NodeID {
	at := p.lastEnd
	return p.tree.New(syntax.KindMissing, source.Span{File: p.file.ID, Start: at, End: at})
}

// diagSpan points at the current token, or just past the previous one at EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.cur()
	if tok.Kind == token.EOF && p.lastEnd > 0 {
		return source.Span{File: p.file.ID, Start: p.lastEnd, End: p.lastEnd}
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	p.opts.CurrentErrors++
	if p.opts.Enough() {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}

// resync skips to one of stops or a closing brace, without consuming it.
func (p *Parser) resync(stops ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		k := p.cur().Kind
		if depth == 0 && (slices.Contains(stops, k) || k == token.RBrace) {
			return
		}
		switch k {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	}
	return "'" + tok.Kind.String() + "'"
}
