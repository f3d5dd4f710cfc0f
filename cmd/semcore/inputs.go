package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcore/internal/driver"
	"semcore/internal/observ"
	"semcore/internal/project"
	"semcore/internal/syntax"
	"semcore/internal/trace"
)

var errNoInputs = errors.New("no input files (pass files or directories, or add a semcore.toml)")

// sourcePaths expands args (files or directories) into source files. With
// no args the manifest's sources are used.
func sourcePaths(args []string) ([]string, error) {
	if len(args) == 0 {
		if current.manifest == nil {
			return nil, errNoInputs
		}
		return current.manifest.Sources()
	}
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := project.Walk(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	if len(out) == 0 {
		return nil, errNoInputs
	}
	return out, nil
}

// withProject adds the manifest's sources to file so declarations in the
// rest of the project resolve. file comes first.
func withProject(file string) []string {
	paths := []string{file}
	if current.manifest == nil {
		return paths
	}
	more, err := current.manifest.Sources()
	if err != nil {
		log.Warnf("list project sources: %v", err)
		return paths
	}
	abs, _ := filepath.Abs(file)
	for _, p := range more {
		if p != abs && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

func driverOptions(cmd *cobra.Command, timer *observ.Timer) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: current.maxDiagnostics,
		Jobs:           current.jobs,
		Tracer:         trace.FromContext(cmd.Context()),
		Timer:          timer,
	}
	useCache := current.diskCache
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		useCache, _ = cmd.Flags().GetBool("cache")
	}
	if useCache {
		cache, err := driver.OpenDiskCache("semcore")
		if err != nil {
			return opts, fmt.Errorf("open cache: %w", err)
		}
		log.Debugf("disk cache at %s", cache.Dir())
		opts.Cache = cache
	}
	return opts, nil
}

// printTimings writes the timer's summary when --timings is set.
func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if on, _ := cmd.Flags().GetBool("timings"); on {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
}

// compileOne compiles file together with its project and returns the
// result and the tree of file.
func compileOne(ctx context.Context, cmd *cobra.Command, file string) (*driver.Result, *syntax.Tree, error) {
	timer := observ.NewTimer()
	defer printTimings(cmd, timer)
	opts, err := driverOptions(cmd, timer)
	if err != nil {
		return nil, nil, err
	}
	res, err := driver.Compile(ctx, withProject(file), opts)
	if err != nil {
		return nil, nil, err
	}
	want := filepath.ToSlash(filepath.Clean(file))
	for _, fr := range res.Results {
		if fr.File.Path == want {
			return res, fr.Tree, nil
		}
	}
	return nil, nil, fmt.Errorf("cannot load %s", file)
}
