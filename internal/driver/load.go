package driver

import (
	"errors"
	"fmt"

	"semcore/internal/diag"
	"semcore/internal/source"
)

// Load reads paths into a new file set. Unreadable files become
// IOLoadFileError diagnostics in bag; the rest still load. The error is
// non-nil only when nothing could be loaded.
func Load(paths []string, bag *diag.Bag, obs Observer) (*source.FileSet, []*source.File, error) {
	fs := source.NewFileSet()
	files := make([]*source.File, 0, len(paths))
	var errs []error
	for _, path := range paths {
		obs.emit(Event{File: path, Stage: StageLoad, Status: StatusWorking})
		id, err := fs.Load(path)
		if err != nil {
			errs = append(errs, err)
			bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, fmt.Sprintf("cannot load %s: %v", path, err)))
			obs.emit(Event{File: path, Stage: StageLoad, Status: StatusError})
			continue
		}
		files = append(files, fs.Get(id))
	}
	if len(files) == 0 && len(errs) > 0 {
		return nil, nil, fmt.Errorf("load sources: %w", errors.Join(errs...))
	}
	return fs, files, nil
}
