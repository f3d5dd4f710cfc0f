package driver

import (
	"slices"
	"strconv"

	"semcore/internal/project"
	"semcore/internal/source"
	"semcore/internal/version"
)

// snapshotDigest identifies a set of files by path and content. Binding
// one file can depend on declarations in any other, so every file's key
// includes it.
func snapshotDigest(files []*source.File) project.Digest {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b *source.File) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
	parts := make([][]byte, 0, 2*len(sorted))
	for _, f := range sorted {
		parts = append(parts, []byte(f.Path), f.Hash[:])
	}
	return project.Combine(project.Digest{}, parts...)
}

// fileKey is the cache key of one file's summary.
func fileKey(f *source.File, snapshot project.Digest, opts Options) project.Digest {
	return project.Combine(f.Hash,
		[]byte(f.Path),
		snapshot[:],
		[]byte(version.Version),
		[]byte(strconv.Itoa(opts.MaxDiagnostics)),
	)
}
