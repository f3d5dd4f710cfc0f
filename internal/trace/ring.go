package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events for dumping after a failure.
// At LevelError it keeps driver and pass spans, which a stream would drop.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
	level  Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) keeps(ev *Event) bool {
	if ev.Kind == KindHeartbeat {
		return true
	}
	if t.level == LevelError {
		return ev.Scope <= ScopePass
	}
	return t.level.ShouldEmit(ev.Scope)
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.keeps(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next] = *ev
	t.next++
	if t.next == len(t.events) {
		t.next = 0
		t.full = true
	}
}

// Snapshot copies the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
func (t *RingTracer) Level() Level { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
