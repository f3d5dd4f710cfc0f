package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"fortio.org/safecast"
)

// FileSet owns the source files of one analysis run.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add stores normalized content and returns a fresh FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	normalized := filepath.ToSlash(filepath.Clean(path))
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// AddVirtual adds an in-memory file.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk, strips a UTF-8 BOM and normalizes CRLF.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	var flags FileFlags
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
		flags |= FileHadBOM
	}
	if slices.Contains(content, '\r') {
		out := make([]byte, 0, len(content))
		for i := 0; i < len(content); i++ {
			if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
			out = append(out, content[i])
		}
		content = out
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// Get returns the file for id or nil.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Len reports the number of files.
func (fs *FileSet) Len() int { return len(fs.files) }

// GetByPath returns the latest file loaded under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// LineCol converts a byte offset into a 1-based line and column.
func (f *File) LineCol(off uint32) LineCol {
	// number of newlines strictly before off
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	start := uint32(0)
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - start + 1}
}

// Offset converts a 1-based line and column back into a byte offset.
func (f *File) Offset(pos LineCol) (uint32, bool) {
	if pos.Line == 0 || pos.Col == 0 || int(pos.Line) > len(f.LineIdx)+1 {
		return 0, false
	}
	start := uint32(0)
	if pos.Line > 1 {
		start = f.LineIdx[pos.Line-2] + 1
	}
	off := start + pos.Col - 1
	if int(off) > len(f.Content) {
		return 0, false
	}
	return off, true
}

// GetLine returns the text of a 1-based line without its newline.
func (f *File) GetLine(line uint32) string {
	if line == 0 || int(line) > len(f.LineIdx)+1 {
		return ""
	}
	start := uint32(0)
	if line > 1 {
		start = f.LineIdx[line-2] + 1
	}
	end := uint32(len(f.Content))
	if int(line) <= len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	return string(f.Content[start:end])
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}
