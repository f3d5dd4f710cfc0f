package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"semcore/internal/source"
	"semcore/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func triviaKinds(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		out = append(out, tr.Kind.String())
	}
	return out
}

// TokensPretty writes one numbered line per token.
func TokensPretty(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	for i, tok := range toks {
		start, end := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%4d: %-18s", i+1, tok.Kind)
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if lead := triviaKinds(tok); len(lead) > 0 {
			line += " (leading: " + strings.Join(lead, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func TokensJSON(w io.Writer, toks []token.Token) error {
	out := make([]TokenOutput, 0, len(toks))
	for _, tok := range toks {
		out = append(out, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span, Leading: triviaKinds(tok)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
