package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	var events []string
	tm.OnPhase(func(p Phase, done bool) {
		if done {
			events = append(events, "end "+p.Name)
		} else {
			events = append(events, "begin "+p.Name)
		}
	})
	load := tm.Begin("load")
	tm.End(load, "3 files")
	err := tm.Time("bind", func() error { return errors.New("cancelled") })
	if err == nil {
		t.Fatal("Time dropped the error")
	}
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Note != "3 files" || r.Phases[1].Note != "cancelled" {
		t.Fatalf("report %+v", r)
	}
	if strings.Join(events, ",") != "begin load,end load,begin bind,end bind" {
		t.Fatalf("hook saw %v", events)
	}
	if s := tm.Summary(); !strings.Contains(s, "load") || !strings.Contains(s, "total") {
		t.Fatalf("summary %q", s)
	}
}

func TestTimerConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("file"), "")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 8 {
		t.Fatalf("%d phases", n)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("empty report %+v", r)
	}
}
