package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withBuild(t *testing.T, v, commit, date string) {
	t.Helper()
	old := []string{Version, GitCommit, BuildDate}
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = old[0], old[1], old[2] })
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, v := range []string{"0.1.0-dev", "1.2.3", "2.0"} {
		withBuild(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestPrintOptionalFields(t *testing.T) {
	color.NoColor = true
	withBuild(t, "1.2.3", "", "")
	var buf bytes.Buffer
	Print(&buf)
	if buf.String() != "semcore 1.2.3\n" {
		t.Fatalf("banner %q", buf.String())
	}

	withBuild(t, "1.2.3", "abc123", "2026-01-15T10:30:00Z")
	buf.Reset()
	Print(&buf)
	if !strings.Contains(buf.String(), "commit:  abc123") || !strings.Contains(buf.String(), "built:   2026-01-15") {
		t.Fatalf("banner %q", buf.String())
	}
}
