package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"semcore/internal/diagfmt"
	"semcore/internal/semantic"
	"semcore/internal/source"
	"semcore/internal/syntax"
)

var queryCmd = &cobra.Command{
	Use:   "query [flags] file.cs LINE:COL",
	Short: "Show what the expression at a position binds to",
	Long: `Query prints the type, symbol, conversion and constant value of the
innermost expression covering LINE:COL. With --snippet the given expression
is bound as if it were written at that position instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.String("snippet", "", "bind this expression at the position instead")
	f.String("format", "pretty", "output format (pretty|json)")
	f.Bool("cache", false, "reuse per-file results from the disk cache")
}

// parsePosition parses "LINE:COL" (both 1-based).
func parsePosition(s string) (source.LineCol, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return source.LineCol{}, fmt.Errorf("position %q: want LINE:COL", s)
	}
	line, err := strconv.ParseUint(l, 10, 32)
	if err != nil || line == 0 {
		return source.LineCol{}, fmt.Errorf("position %q: bad line", s)
	}
	col, err := strconv.ParseUint(c, 10, 32)
	if err != nil || col == 0 {
		return source.LineCol{}, fmt.Errorf("position %q: bad column", s)
	}
	return source.LineCol{Line: uint32(line), Col: uint32(col)}, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	snippet, _ := cmd.Flags().GetString("snippet")
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, tree, err := compileOne(ctx, cmd, args[0])
	if err != nil {
		return err
	}
	off, ok := tree.File.Offset(pos)
	if !ok {
		return fmt.Errorf("%s: position %d:%d is outside the file", tree.File.Path, pos.Line, pos.Col)
	}
	model := res.Compilation.Model(tree)
	tab := res.Compilation.Table()

	if snippet != "" {
		sn, err := model.BindSnippet(ctx, off, snippet)
		if err != nil {
			return err
		}
		facts := diagfmt.SnippetFacts(tab, sn)
		if format == "json" {
			return diagfmt.FactsJSON(os.Stdout, facts)
		}
		if err := diagfmt.FactsPretty(os.Stdout, facts, sn.Files); err != nil {
			return err
		}
		if len(sn.Diags) > 0 {
			if err := diagfmt.Short(os.Stdout, sn.Diags, sn.Files, diagfmt.PathModeBasename, ""); err != nil {
				return err
			}
			return errDiagnostics
		}
		return nil
	}

	node := model.NodeAt(off)
	if !node.IsValid() {
		return fmt.Errorf("no expression at %d:%d", pos.Line, pos.Col)
	}
	info, err := model.InfoFor(ctx, node)
	if errors.Is(err, semantic.ErrNotExpression) {
		return fmt.Errorf("%s at %d:%d is not bound as an expression", tree.Kind(node), pos.Line, pos.Col)
	}
	if err != nil {
		return err
	}
	facts := []diagfmt.ExprFact{diagfmt.Fact(tab, tree, node, info)}
	if format == "json" {
		return diagfmt.FactsJSON(os.Stdout, facts)
	}
	return diagfmt.FactsPretty(os.Stdout, facts, res.Files)
}

// enclosingExpr is used by the repl to report where :at landed.
func enclosingExpr(tree *syntax.Tree, model *semantic.Model, off uint32) string {
	node := model.NodeAt(off)
	if !node.IsValid() {
		if n := tree.NodeAt(off); n.IsValid() {
			return tree.Kind(n).String()
		}
		return "file"
	}
	return tree.Kind(node).String()
}
