package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcore/internal/diagfmt"
	"semcore/internal/driver"
	"semcore/internal/semantic"
	"semcore/internal/syntax"
	"semcore/internal/version"
)

const historyFile = ".semcore_history"

var replCmd = &cobra.Command{
	Use:   "repl [file.cs]",
	Short: "Bind expressions interactively against a source file",
	Long: `Repl reads expressions and prints how they bind at the current position
of the loaded file.

  :load FILE     compile FILE (and its project) and move to its start
  :at LINE:COL   bind following expressions at this position
  :where         show the current file and position
  :quit          leave (Ctrl+D works too)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepl,
}

func init() {
	replCmd.Flags().Bool("cache", false, "reuse per-file results from the disk cache")
}

// replSession is the file and position expressions are bound against.
type replSession struct {
	cmd   *cobra.Command
	res   *driver.Result
	tree  *syntax.Tree
	model *semantic.Model
	off   uint32
}

func (s *replSession) load(ctx context.Context, path string) error {
	res, tree, err := compileOne(ctx, s.cmd, path)
	if err != nil {
		return err
	}
	s.res, s.tree = res, tree
	s.model = res.Compilation.Model(tree)
	s.off = 0
	if res.HasErrors() {
		log.Warnf("%s has errors; results may be incomplete", path)
	}
	return nil
}

func (s *replSession) where() string {
	if s.tree == nil {
		return "no file loaded"
	}
	lc := s.tree.File.LineCol(s.off)
	return fmt.Sprintf("%s:%d:%d (%s)", s.tree.File.Path, lc.Line, lc.Col, enclosingExpr(s.tree, s.model, s.off))
}

func runRepl(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	color.NoColor = !useColor(cmd, os.Stdout)
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	sess := &replSession{cmd: cmd}
	if len(args) == 1 {
		if err := sess.load(ctx, args[0]); err != nil {
			return err
		}
	}

	fmt.Printf("semcore %s\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", version.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			quit, err := sess.command(ctx, line)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
			}
			if quit {
				return nil
			}
			continue
		}
		if sess.model == nil {
			fmt.Fprintln(os.Stderr, red("no file loaded; use :load FILE"))
			continue
		}
		sn, err := sess.model.BindSnippet(ctx, sess.off, line)
		if err != nil {
			return err
		}
		printSnippet(sess, sn, faint, red)
	}
}

// command runs a ':' directive and reports whether the loop should end.
func (s *replSession) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true, nil
	case ":load":
		if arg == "" {
			return false, errors.New("usage: :load FILE")
		}
		if err := s.load(ctx, arg); err != nil {
			return false, err
		}
		fmt.Println(s.where())
	case ":at":
		if s.tree == nil {
			return false, errors.New("no file loaded")
		}
		pos, err := parsePosition(arg)
		if err != nil {
			return false, err
		}
		off, ok := s.tree.File.Offset(pos)
		if !ok {
			return false, fmt.Errorf("position %s is outside %s", arg, s.tree.File.Path)
		}
		s.off = off
		fmt.Println(s.where())
	case ":where":
		fmt.Println(s.where())
	default:
		return false, fmt.Errorf("unknown command %s (try :load, :at, :where or :quit)", name)
	}
	return false, nil
}

func printSnippet(s *replSession, sn *semantic.Snippet, faint, red func(...any) string) {
	tab := s.res.Compilation.Table()
	f := diagfmt.Fact(tab, sn.Tree, sn.Expr, sn.Info())
	typ := f.Type
	if typ == "" {
		typ = "<none>"
	}
	fmt.Print(color.GreenString(typ))
	if f.Converted != "" {
		fmt.Printf(" %s %s", faint("->"), color.GreenString(f.Converted))
	}
	if f.Symbol != "" {
		fmt.Printf(" %s %s", faint("sym"), color.BlueString(f.Symbol))
	}
	if f.Constant != "" {
		fmt.Printf(" %s %s", faint("="), color.YellowString(f.Constant))
	}
	fmt.Println()
	if f.Reason != "" {
		fmt.Printf("  %s: %s\n", f.Reason, strings.Join(f.Candidates, "; "))
	}
	for _, d := range sn.Diags {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("  %s %s: %s", d.Severity, d.Code.ID(), d.Message)))
	}
}
