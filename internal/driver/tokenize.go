package driver

import (
	"semcore/internal/diag"
	"semcore/internal/lexer"
	"semcore/internal/source"
	"semcore/internal/token"
)

type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes one file; the last token is EOF.
func Tokenize(file *source.File, maxDiagnostics int) TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return TokenizeResult{File: file, Tokens: lx.All(), Bag: bag}
}
