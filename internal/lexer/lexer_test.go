package lexer_test

import (
	"testing"

	"semcore/internal/diag"
	"semcore/internal/lexer"
	"semcore/internal/source"
	"semcore/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func lexAll(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cs", []byte(input)))
	rep := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: rep}).All(), rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, rep := lexAll(t, input)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %+v", input, rep.diagnostics)
	}
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v", input, i, got[i], want[i])
		}
	}
	return toks
}

func TestClassDeclaration(t *testing.T) {
	toks := expectKinds(t, "class C { int P => 1; }",
		token.KwClass, token.Ident, token.LBrace, token.KwInt, token.Ident,
		token.Arrow, token.IntLit, token.Semicolon, token.RBrace)
	if toks[1].Text != "C" {
		t.Fatalf("ident text = %q", toks[1].Text)
	}
}

func TestOperatorsAreGreedy(t *testing.T) {
	expectKinds(t, "a<<=b>>c==d!=e&&f||g++--",
		token.Ident, token.Shl, token.Assign, token.Ident, token.Shr, token.Ident,
		token.EqEq, token.Ident, token.BangEq, token.Ident, token.AndAnd, token.Ident,
		token.OrOr, token.Ident, token.PlusPlus, token.MinusMinus)
}

func TestNumericLiterals(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"123", token.IntLit},
		{"0x1F", token.IntLit},
		{"10L", token.IntLit},
		{"10UL", token.IntLit},
		{"10lu", token.IntLit},
		{"1.5", token.RealLit},
		{".5", token.RealLit},
		{"1e10", token.RealLit},
		{"2.5f", token.RealLit},
		{"3d", token.RealLit},
		{"1.0m", token.RealLit},
	}
	for _, tc := range cases {
		toks := expectKinds(t, tc.in, tc.kind)
		if toks[0].Text != tc.in {
			t.Errorf("%q: text %q", tc.in, toks[0].Text)
		}
	}
}

func TestMemberAccessOnIntIsNotReal(t *testing.T) {
	expectKinds(t, "1.ToString", token.IntLit, token.Dot, token.Ident)
}

func TestBadNumberSuffix(t *testing.T) {
	toks, rep := lexAll(t, "12abc")
	if toks[0].Kind != token.Invalid {
		t.Fatalf("kind = %v", toks[0].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestStringsAndChars(t *testing.T) {
	toks := expectKinds(t, `"a\"b" 'x' '\n'`, token.StringLit, token.CharLit, token.CharLit)
	s, err := lexer.Unquote(toks[0].Text)
	if err != nil || s != `a"b` {
		t.Fatalf("Unquote = %q, %v", s, err)
	}
	r, err := lexer.UnquoteChar(toks[2].Text)
	if err != nil || r != '\n' {
		t.Fatalf("UnquoteChar = %q, %v", r, err)
	}
}

func TestUnicodeEscape(t *testing.T) {
	s, err := lexer.Unquote(`"\u0041b"`)
	if err != nil || s != "Ab" {
		t.Fatalf("Unquote = %q, %v", s, err)
	}
	if _, err := lexer.Unquote(`"\u00"`); err == nil {
		t.Fatalf("expected error for short escape")
	}
}

func TestUnterminatedString(t *testing.T) {
	_, rep := lexAll(t, "\"abc\nx")
	if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestCommentsBecomeTrivia(t *testing.T) {
	toks := expectKinds(t, "// line\n/* block */ x", token.Ident)
	if len(toks[0].Leading) != 4 {
		t.Fatalf("leading trivia = %+v", toks[0].Leading)
	}
	if toks[0].Leading[0].Kind != token.TriviaLineComment || toks[0].Leading[2].Kind != token.TriviaBlockComment {
		t.Fatalf("trivia kinds = %+v", toks[0].Leading)
	}
}

func TestBindMarkerIsTrivia(t *testing.T) {
	toks := expectKinds(t, "/*<bind>*/P/*</bind>*/;", token.Ident, token.Semicolon)
	if toks[0].Leading[0].Text != "/*<bind>*/" {
		t.Fatalf("marker trivia = %+v", toks[0].Leading)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, rep := lexAll(t, "/* never closed")
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlock {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestNFCIdentifiers(t *testing.T) {
	// "é" precomposed vs "e" + combining acute
	toks := expectKinds(t, "caf\u00e9 cafe\u0301", token.Ident, token.Ident)
	if toks[0].Text != toks[1].Text {
		t.Fatalf("identifiers not normalised: %q vs %q", toks[0].Text, toks[1].Text)
	}
}

func TestVerbatimIdentifier(t *testing.T) {
	toks := expectKinds(t, "@class", token.Ident)
	if toks[0].Text != "class" {
		t.Fatalf("text = %q", toks[0].Text)
	}
}

func TestContextualKeywords(t *testing.T) {
	toks := expectKinds(t, "var get", token.KwVar, token.KwGet)
	for _, tok := range toks[:2] {
		if !tok.IsIdentLike() {
			t.Fatalf("%v should be ident-like", tok.Kind)
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	toks, rep := lexAll(t, "a $ b")
	if got := kinds(toks); len(got) != 4 || got[1] != token.Invalid {
		t.Fatalf("kinds = %v", got)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.cs", []byte("a b"))), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
}
