package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcore/internal/diag"
	"semcore/internal/diagfmt"
	"semcore/internal/driver"
	"semcore/internal/observ"
	"semcore/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.cs|dir]...",
	Short: "Report diagnostics for source files",
	Long: `Diag analyses the given files and directories as one compilation and
prints their diagnostics. Without arguments the sources listed by
semcore.toml are used.`,
	RunE: runDiag,
}

func init() {
	f := diagCmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json)")
	f.Bool("notes", true, "show diagnostic notes")
	f.String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.Bool("cache", false, "reuse per-file results from the disk cache")
	f.Bool("clear-cache", false, "empty the disk cache before analysing")
}

func runDiag(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	notes, _ := flags.GetBool("notes")
	uiFlag, _ := flags.GetString("ui")
	modeName, _ := flags.GetString("path-mode")
	pathMode, ok := diagfmt.ParsePathMode(modeName)
	if !ok {
		return fmt.Errorf("invalid --path-mode %q", modeName)
	}
	if format != "pretty" && format != "short" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	paths, err := sourcePaths(args)
	if err != nil {
		return err
	}
	timer := observ.NewTimer()
	opts, err := driverOptions(cmd, timer)
	if err != nil {
		return err
	}
	if clear, _ := flags.GetBool("clear-cache"); clear && opts.Cache != nil {
		if err := opts.Cache.DropAll(); err != nil {
			return err
		}
		log.Info("disk cache cleared")
	}
	log.Debugf("analysing %d files", len(paths))

	var res *driver.Result
	work := func(ctx context.Context, obs driver.Observer) error {
		opts.Observer = obs
		var err error
		res, err = driver.Analyze(ctx, paths, opts)
		return err
	}
	showUI, err := wantUI(uiFlag, format)
	if err != nil {
		return err
	}
	if showUI {
		err = ui.Run(cmd.Context(), os.Stderr, fmt.Sprintf("analysing %d files", len(paths)), paths, work)
	} else {
		err = work(cmd.Context(), nil)
	}
	printTimings(cmd, timer)
	if err != nil {
		return err
	}

	// Load failures have no position to print.
	for _, d := range res.Load.Items() {
		log.Error(d.Message)
	}
	var all []diag.Diagnostic
	for _, fr := range res.Results {
		all = append(all, fr.Diagnostics...)
	}
	base := ""
	if current.manifest != nil {
		base = current.manifest.Root
	} else if wd, err := os.Getwd(); err == nil {
		base = wd
	}

	switch format {
	case "json":
		err = diagfmt.JSON(os.Stdout, all, res.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          base,
			IncludeNotes:     notes,
		})
	case "short":
		err = diagfmt.Short(os.Stdout, all, res.Files, pathMode, base)
	default:
		err = diagfmt.Pretty(os.Stdout, all, res.Files, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   0,
			PathMode:  pathMode,
			BaseDir:   base,
			ShowNotes: notes,
		})
	}
	if err != nil {
		return err
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func wantUI(mode, format string) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return format != "json" && isTerminal(os.Stderr) && isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", mode)
}
