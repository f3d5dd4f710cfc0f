// Package version holds build metadata, overridable with -ldflags -X.
package version

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with each numeric part in its own color. The
// pre-release suffix stays plain.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	for i, p := range parts {
		if i < len(partColors) {
			parts[i] = partColors[i].Sprint(p)
		}
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Print writes the banner shown by `semcore version`.
func Print(w io.Writer) {
	fmt.Fprintf(w, "semcore %s\n", Colored())
	if GitCommit != "" {
		fmt.Fprintf(w, "commit:  %s\n", GitCommit)
	}
	if GitMessage != "" {
		fmt.Fprintf(w, "message: %s\n", GitMessage)
	}
	if BuildDate != "" {
		fmt.Fprintf(w, "built:   %s\n", BuildDate)
	}
}
