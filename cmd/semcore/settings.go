package main

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcore/internal/project"
)

// settings merges semcore.toml with command-line flags. Flags that were set
// explicitly win.
type settings struct {
	manifest       *project.Manifest
	maxDiagnostics int
	jobs           int
	diskCache      bool
	traceLevel     string
	traceMode      string
}

// current is set before any command runs.
var current = &settings{}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	s := &settings{}
	var err error
	if s.maxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
		return nil, flagError("max-diagnostics", err)
	}
	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return nil, flagError("jobs", err)
	}

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		s.manifest, err = project.Decode(path)
	} else {
		s.manifest, err = project.Load(".")
		if errors.Is(err, project.ErrNoManifest) {
			log.Debug("no semcore.toml found, using flags only")
			return s, nil
		}
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("using %s", s.manifest.Path)
	for _, key := range s.manifest.Unknown {
		log.Warnf("%s: unknown key %s", s.manifest.Path, key)
	}

	a := s.manifest.Config.Analysis
	if !cmd.Flags().Changed("max-diagnostics") && a.MaxDiagnostics > 0 {
		s.maxDiagnostics = a.MaxDiagnostics
	}
	if !cmd.Flags().Changed("jobs") && a.Jobs > 0 {
		s.jobs = a.Jobs
	}
	s.diskCache = a.DiskCache
	s.traceLevel, s.traceMode = a.TraceLevel, a.TraceMode
	return s, nil
}
