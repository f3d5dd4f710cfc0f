package main

import (
	"os"

	"github.com/spf13/cobra"

	"semcore/internal/diagfmt"
	"semcore/internal/driver"
	"semcore/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cs",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timer := observ.NewTimer()
		defer printTimings(cmd, timer)
		opts, err := driverOptions(cmd, timer)
		if err != nil {
			return err
		}
		res, err := driver.Compile(cmd.Context(), args, opts)
		if err != nil {
			return err
		}
		fr := res.Results[0]
		if len(fr.Diagnostics) > 0 {
			popts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1}
			if err := diagfmt.Pretty(os.Stderr, fr.Diagnostics, res.Files, popts); err != nil {
				return err
			}
		}
		return fr.Tree.Dump(os.Stdout, fr.Tree.Root)
	},
}
