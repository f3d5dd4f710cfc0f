package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	IntLit
	RealLit
	CharLit
	StringLit

	keywordsBegin
	KwUsing
	KwNamespace
	KwClass
	KwStruct
	KwInterface
	KwPublic
	KwPrivate
	KwProtected
	KwInternal
	KwStatic
	KwConst
	KwExtern
	KwReturn
	KwIf
	KwElse
	KwVar
	KwNew
	KwThis
	KwBase
	KwNull
	KwTrue
	KwFalse
	KwOperator
	KwImplicit
	KwExplicit
	KwGet
	KwSet
	KwWhere

	// predefined type keywords
	predefBegin
	KwVoid
	KwObject
	KwString
	KwBool
	KwChar
	KwSByte
	KwByte
	KwShort
	KwUShort
	KwInt
	KwUInt
	KwLong
	KwULong
	KwFloat
	KwDouble
	KwDecimal
	predefEnd
	keywordsEnd

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
	Question
	Arrow // =>

	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus
	MinusMinus
	Bang
	Tilde
	Amp
	Pipe
	Caret
	AndAnd
	OrOr
	Shl
	Shr
	EqEq
	BangEq
	Lt
	Gt
	LtEq
	GtEq
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "EOF",
	Ident:       "identifier",
	IntLit:      "integer literal",
	RealLit:     "real literal",
	CharLit:     "character literal",
	StringLit:   "string literal",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Colon:       ":",
	Question:    "?",
	Arrow:       "=>",
	Assign:      "=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	PlusPlus:    "++",
	MinusMinus:  "--",
	Bang:        "!",
	Tilde:       "~",
	Amp:         "&",
	Pipe:        "|",
	Caret:       "^",
	AndAnd:      "&&",
	OrOr:        "||",
	Shl:         "<<",
	Shr:         ">>",
	EqEq:        "==",
	BangEq:      "!=",
	Lt:          "<",
	Gt:          ">",
	LtEq:        "<=",
	GtEq:        ">=",
	keywordsEnd: "keyword",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		for text, kw := range keywords {
			if kw == k {
				return text
			}
		}
	}
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsKeyword reports whether k is a reserved or contextual keyword.
func (k Kind) IsKeyword() bool { return k > keywordsBegin && k < keywordsEnd && k != predefBegin && k != predefEnd }

// IsPredefinedType reports whether k names a built-in type (int, string, ...).
func (k Kind) IsPredefinedType() bool { return k > predefBegin && k < predefEnd }

// IsModifier reports whether k may prefix a member declaration.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwInternal, KwStatic, KwConst, KwExtern:
		return true
	default:
		return false
	}
}
