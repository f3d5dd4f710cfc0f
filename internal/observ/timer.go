// Package observ measures analysis phases for --timings output.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step such as "load", "collect" or "bind".
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records phases. Begin and End may be called from several
// goroutines; phases keep the order in which they began.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	hook   func(Phase, bool)
}

func NewTimer() *Timer { return &Timer{} }

// OnPhase registers a callback run at each phase start (done=false) and end.
func (t *Timer) OnPhase(hook func(p Phase, done bool)) { t.hook = hook }

// Begin starts a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	p := Phase{Name: name, Start: time.Now()}
	t.phases = append(t.phases, p)
	idx := len(t.phases) - 1
	t.mu.Unlock()
	if t.hook != nil {
		t.hook(p, false)
	}
	return idx
}

// End closes the phase idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	if idx < 0 || idx >= len(t.phases) {
		t.mu.Unlock()
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	done := *p
	t.mu.Unlock()
	if t.hook != nil {
		t.hook(done, true)
	}
}

// Time runs fn as the phase name.
func (t *Timer) Time(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	note := ""
	if err != nil {
		note = err.Error()
	}
	t.End(idx, note)
	return err
}

// PhaseReport is the serialised form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is a timer's phases plus their sum.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
