// Command semcore analyses C#-like sources: tokens, syntax trees,
// diagnostics and the semantic facts of individual expressions.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"semcore/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "semcore",
	Short:         "Semantic analysis for a C#-like language",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		switch {
		case verbose:
			log.SetLevel(log.DebugLevel)
		case quiet:
			log.SetLevel(log.ErrorLevel)
		default:
			log.SetLevel(log.WarnLevel)
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		current = s
		return setupTracing(cmd, s)
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return teardownTracing(false)
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd, parseCmd, diagCmd, queryCmd, dumpCmd, replCmd, versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "only log errors")
	pf.BoolP("verbose", "v", false, "log debug messages")
	pf.Bool("timings", false, "print phase timings to stderr")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 for no limit)")
	pf.IntP("jobs", "j", 0, "parallel workers (0 for GOMAXPROCS)")
	pf.String("config", "", "path to semcore.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		if code != 1 {
			log.Error(err)
		}
		_ = teardownTracing(code != 1)
		os.Exit(code)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	switch mode, _ := cmd.Flags().GetString("color"); mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f)
	}
}
