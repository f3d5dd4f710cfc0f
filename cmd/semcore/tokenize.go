package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"semcore/internal/diag"
	"semcore/internal/diagfmt"
	"semcore/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cs",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return flagError("format", err)
	}
	fs, files, err := driver.Load(args, diag.NewBag(0), nil)
	if err != nil {
		return err
	}
	res := driver.Tokenize(files[0], current.maxDiagnostics)
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1}
		if err := diagfmt.Pretty(os.Stderr, res.Bag.Items(), fs, opts); err != nil {
			return err
		}
	}
	switch format {
	case "pretty":
		return diagfmt.TokensPretty(os.Stdout, res.Tokens, fs)
	case "json":
		return diagfmt.TokensJSON(os.Stdout, res.Tokens)
	}
	return fmt.Errorf("unknown format %q", format)
}
