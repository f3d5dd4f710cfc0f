package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"semcore/internal/diag"
	"semcore/internal/project"
	"semcore/internal/source"
)

// Bump when Summary changes shape.
const summarySchema uint16 = 1

// DiskCache stores per-file analysis summaries keyed by a digest of the
// file and everything it was analysed with. Entries are written through a
// temporary file and renamed, so concurrent writers never expose a torn
// entry.
type DiskCache struct {
	dir string
}

// Summary is what a cache hit restores for one file.
type Summary struct {
	Schema      uint16             `msgpack:"schema"`
	Path        string             `msgpack:"path"`
	Roots       int                `msgpack:"roots"`
	Diagnostics []CachedDiagnostic `msgpack:"diags"`
}

type CachedDiagnostic struct {
	Code     uint16       `msgpack:"code"`
	Severity uint8        `msgpack:"sev"`
	Start    uint32       `msgpack:"start"`
	End      uint32       `msgpack:"end"`
	Message  string       `msgpack:"msg"`
	Notes    []CachedNote `msgpack:"notes,omitempty"`
}

// CachedNote keeps the path of its span since notes may point into
// other files.
type CachedNote struct {
	Path  string `msgpack:"path,omitempty"`
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app>, or ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

func (c *DiskCache) Put(key project.Digest, s *Summary) (err error) {
	if c == nil {
		return nil
	}
	s.Schema = summarySchema
	path := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode summary: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Get loads the summary for key. Entries of another schema count as misses.
func (c *DiskCache) Get(key project.Digest) (*Summary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s Summary
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("decode summary %x: %w", key[:4], err)
	}
	if s.Schema != summarySchema {
		return nil, false, nil
	}
	return &s, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	if err := os.RemoveAll(filepath.Join(c.dir, "files")); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(c.dir, "files"), 0o755)
}

func summarize(files *source.FileSet, path string, roots int, ds []diag.Diagnostic) *Summary {
	s := &Summary{Path: path, Roots: roots, Diagnostics: make([]CachedDiagnostic, 0, len(ds))}
	for _, d := range ds {
		cd := CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cn := CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg}
			if f := files.Get(n.Span.File); f != nil {
				cn.Path = f.Path
			}
			cd.Notes = append(cd.Notes, cn)
		}
		s.Diagnostics = append(s.Diagnostics, cd)
	}
	return s
}

// restore rebuilds diagnostics against files. Notes into files that are
// no longer loaded lose their span.
func (s *Summary) restore(files *source.FileSet, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(s.Diagnostics))
	for _, cd := range s.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			var sp source.Span
			if f, ok := files.GetByPath(n.Path); ok {
				sp = source.Span{File: f.ID, Start: n.Start, End: n.End}
			}
			d = d.WithNote(sp, n.Msg)
		}
		out = append(out, d)
	}
	return out
}
