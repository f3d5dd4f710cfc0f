package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"semcore/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		color.NoColor = !useColor(cmd, os.Stdout)
		version.Print(os.Stdout)
	},
}
