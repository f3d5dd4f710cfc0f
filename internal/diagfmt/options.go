// Package diagfmt renders diagnostics, tokens and semantic facts for the CLI.
package diagfmt

import (
	"path/filepath"
	"strings"

	"semcore/internal/source"
)

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // relative to BaseDir when below it
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode parses auto, absolute, relative or basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

type PrettyOpts struct {
	Color     bool
	Context   int // lines shown around the primary line
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	BaseDir          string
	Max              int // 0 means all
	IncludeNotes     bool
}

func formatPath(f *source.File, mode PathMode, base string) string {
	if f == nil {
		return "<unknown>"
	}
	p := filepath.FromSlash(f.Path)
	if f.Flags&source.FileVirtual != 0 {
		return p
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeRelative, PathModeAuto:
		if base == "" {
			return p
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return p
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil || (mode == PathModeAuto && strings.HasPrefix(rel, "..")) {
			return p
		}
		return rel
	}
	return p
}
