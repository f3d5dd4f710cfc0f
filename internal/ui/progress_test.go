package ui

import (
	"strings"
	"testing"

	"semcore/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("diag", []string{"a.cs", "b.cs"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.cs", Stage: driver.StageBind, Status: driver.StatusWorking})
	if got := m.fraction(); got != 0.25 {
		t.Fatalf("fraction = %v", got)
	}
	m.Update(eventMsg{File: "a.cs", Stage: driver.StageBind, Status: driver.StatusCached})
	m.Update(eventMsg{File: "b.cs", Stage: driver.StageBind, Status: driver.StatusError})
	m.Update(eventMsg{File: "unknown.cs", Status: driver.StatusDone})
	if got := m.fraction(); got != 1 {
		t.Fatalf("fraction = %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "cached") || !strings.Contains(view, "errors") {
		t.Fatalf("view:\n%s", view)
	}
	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatal("done did not quit")
	}
	if !strings.HasPrefix(stripANSI(m.View()), "done: diag") {
		t.Fatalf("final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/semantic/model.cs", 12); got != "internal/..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("a.cs", 12); got != "a.cs" {
		t.Fatalf("truncate = %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == 0x1b:
			skip = true
		case skip && r == 'm':
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}
