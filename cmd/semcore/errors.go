package main

import (
	"errors"
	"fmt"
)

// errDiagnostics signals that analysis succeeded but reported errors.
var errDiagnostics = errors.New("analysis reported errors")

func exitCode(err error) int {
	if errors.Is(err, errDiagnostics) {
		return 1
	}
	return 2
}

func flagError(name string, err error) error {
	return fmt.Errorf("read --%s: %w", name, err)
}
