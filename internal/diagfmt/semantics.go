package diagfmt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"semcore/internal/binder"
	"semcore/internal/semantic"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
)

// ExprFact is the rendered Info of one expression.
type ExprFact struct {
	Node       syntax.NodeID `json:"node"`
	Span       source.Span   `json:"span"`
	Kind       string        `json:"kind"`
	Text       string        `json:"text"`
	Type       string        `json:"type,omitempty"`
	Converted  string        `json:"converted,omitempty"`
	Conversion string        `json:"conversion,omitempty"`
	Symbol     string        `json:"symbol,omitempty"`
	Candidates []string      `json:"candidates,omitempty"`
	Group      []string      `json:"method_group,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Constant   string        `json:"constant,omitempty"`
}

// Fact renders info for the expression node of tree.
func Fact(tab *symbols.Table, tree *syntax.Tree, node syntax.NodeID, info binder.Info) ExprFact {
	f := ExprFact{
		Node: node,
		Span: tree.Span(node),
		Kind: tree.Kind(node).String(),
		Text: oneLine(tree.SourceText(node)),
	}
	if info.Type.IsValid() {
		f.Type = tab.Display(info.Type)
	}
	if info.ConvertedType.IsValid() && info.ConvertedType != info.Type {
		f.Converted = tab.Display(info.ConvertedType)
		f.Conversion = info.ImplicitConversion.String()
	}
	if info.Symbol.IsValid() {
		f.Symbol = tab.Display(info.Symbol)
	}
	for _, c := range info.CandidateSymbols {
		f.Candidates = append(f.Candidates, tab.Display(c))
	}
	for _, m := range info.MethodGroup {
		f.Group = append(f.Group, tab.Display(m))
	}
	if info.CandidateReason != binder.ReasonNone {
		f.Reason = info.CandidateReason.String()
	}
	if info.IsCompileTimeConstant {
		f.Constant = info.ConstantValue.String()
	}
	return f
}

// SnippetFacts renders every expression of a bound snippet in source order.
func SnippetFacts(tab *symbols.Table, sn *semantic.Snippet) []ExprFact {
	var out []ExprFact
	sn.Tree.Walk(sn.Tree.Root, func(id syntax.NodeID) bool {
		if info, ok := sn.Infos[id]; ok {
			out = append(out, Fact(tab, sn.Tree, id, info))
		}
		return true
	})
	return out
}

// CollectFacts binds every member body of the model's tree and renders each
// expression in source order.
func CollectFacts(ctx context.Context, m *semantic.Model, tab *symbols.Table) ([]ExprFact, error) {
	tree := m.Tree()
	var out []ExprFact
	var walkErr error
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if walkErr != nil {
			return false
		}
		if !tree.Kind(id).IsExpression() {
			return true
		}
		info, err := m.InfoFor(ctx, id)
		switch {
		case errors.Is(err, semantic.ErrNotExpression):
			return true
		case err != nil:
			walkErr = err
			return false
		}
		out = append(out, Fact(tab, tree, id, info))
		return true
	})
	return out, walkErr
}

// FactsPretty writes "line:col Kind `text` : Type" plus whatever else is known.
func FactsPretty(w io.Writer, facts []ExprFact, fs *source.FileSet) error {
	for _, f := range facts {
		start, _ := fs.Resolve(f.Span)
		var b strings.Builder
		fmt.Fprintf(&b, "%d:%d %s `%s`", start.Line, start.Col, f.Kind, f.Text)
		if f.Type != "" {
			b.WriteString(" : " + f.Type)
		}
		if f.Converted != "" {
			fmt.Fprintf(&b, " -> %s (%s)", f.Converted, f.Conversion)
		}
		if f.Symbol != "" {
			b.WriteString(" sym=" + f.Symbol)
		}
		if f.Reason != "" {
			fmt.Fprintf(&b, " %s[%s]", f.Reason, strings.Join(f.Candidates, "; "))
		}
		if len(f.Group) > 0 {
			fmt.Fprintf(&b, " group[%s]", strings.Join(f.Group, "; "))
		}
		if f.Constant != "" {
			b.WriteString(" const=" + f.Constant)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func FactsJSON(w io.Writer, facts []ExprFact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(facts)
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
