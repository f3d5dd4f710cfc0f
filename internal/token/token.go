package token

import "semcore/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	}
	return "trivia"
}

// Trivia is whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal, including true/false/null.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, CharLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsIdentLike reports whether the token can serve as an identifier, which
// includes contextual keywords.
func (t Token) IsIdentLike() bool {
	return t.Kind == Ident || t.Kind.IsContextual()
}
