// Package project locates and decodes semcore.toml.
//
//	[package]
//	name = "demo"
//
//	[analysis]
//	max_diagnostics = 200
//	jobs = 4
//	trace_level = "phase"
//	trace_mode = "ring"
//	disk_cache = true
//
//	[paths]
//	include = ["src"]
//	exclude = ["src/generated"]
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file Find looks for.
const ManifestName = "semcore.toml"

// SourceExt is the extension of analysed files.
const SourceExt = ".cs"

// ErrNoManifest is returned when no semcore.toml exists above a directory.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

type Manifest struct {
	Path    string // absolute path of semcore.toml
	Root    string // its directory
	Config  Config
	Unknown []string // keys present in the file that nothing reads
}

type Config struct {
	Package  PackageConfig  `toml:"package"`
	Analysis AnalysisConfig `toml:"analysis"`
	Paths    PathsConfig    `toml:"paths"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type AnalysisConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
	TraceLevel     string `toml:"trace_level"`
	TraceMode      string `toml:"trace_mode"`
	DiskCache      bool   `toml:"disk_cache"`
}

type PathsConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// Find walks up from dir to the nearest semcore.toml.
func Find(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoManifest
		}
		dir = parent
	}
}

// Load finds and decodes the manifest governing dir.
func Load(dir string) (*Manifest, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return Decode(path)
}

// Decode reads the manifest at path.
func Decode(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Analysis.MaxDiagnostics < 0 || cfg.Analysis.Jobs < 0 {
		return nil, fmt.Errorf("%s: [analysis] limits must not be negative", path)
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	for _, key := range meta.Undecoded() {
		m.Unknown = append(m.Unknown, key.String())
	}
	return m, nil
}

// Sources lists the source files under the include directories (the root
// when none are given), skipping excluded ones, in lexical order.
func (m *Manifest) Sources() ([]string, error) {
	include := m.Config.Paths.Include
	if len(include) == 0 {
		include = []string{"."}
	}
	exclude := make([]string, 0, len(m.Config.Paths.Exclude))
	for _, e := range m.Config.Paths.Exclude {
		exclude = append(exclude, filepath.Join(m.Root, filepath.FromSlash(e)))
	}
	var out []string
	for _, inc := range include {
		files, err := Walk(filepath.Join(m.Root, filepath.FromSlash(inc)), exclude...)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Walk lists the source files under dir outside the skip directories.
func Walk(dir string, skip ...string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if slices.Contains(skip, path) || (path != dir && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt && !slices.Contains(skip, path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return out, nil
}
