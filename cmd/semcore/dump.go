package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"semcore/internal/diagfmt"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file.cs",
	Short: "Print the semantic facts of every expression in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unknown format %q", format)
		}
		ctx := cmd.Context()
		res, tree, err := compileOne(ctx, cmd, args[0])
		if err != nil {
			return err
		}
		model := res.Compilation.Model(tree)
		facts, err := diagfmt.CollectFacts(ctx, model, res.Compilation.Table())
		if err != nil {
			return err
		}
		if format == "json" {
			return diagfmt.FactsJSON(os.Stdout, facts)
		}
		return diagfmt.FactsPretty(os.Stdout, facts, res.Files)
	},
}

func init() {
	dumpCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	dumpCmd.Flags().Bool("cache", false, "reuse per-file results from the disk cache")
}
