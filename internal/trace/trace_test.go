package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		l, err := ParseLevel(name)
		if err != nil || !strings.EqualFold(l.String(), name) {
			t.Fatalf("ParseLevel(%q) = %v, %v", name, l, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("verbose parsed")
	}
}

func TestSpanNesting(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	outer := Begin(ring, ScopePass, "bind", 0)
	ctx := WithSpan(context.Background(), outer)
	inner := Begin(ring, ScopeNode, "overload", CurrentSpan(ctx).SpanID)
	inner.WithExtra("name", "M").End("failed")
	outer.End("")

	evs := ring.Snapshot()
	if len(evs) != 4 {
		t.Fatalf("got %d events", len(evs))
	}
	if evs[1].ParentID != outer.ID() || evs[2].Extra["name"] != "M" || evs[2].Detail != "failed" {
		t.Fatalf("inner span: %+v %+v", evs[1], evs[2])
	}
	if evs[3].Kind != KindSpanEnd || evs[3].SpanID != outer.ID() {
		t.Fatalf("last event %+v", evs[3])
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	s := Begin(NewRingTracer(4, LevelPhase), ScopeNode, "overload", 0)
	if s.ID() != 0 || s.WithExtra("k", "v").End("") != 0 {
		t.Fatal("filtered span recorded work")
	}
	ctx := context.Background()
	if WithSpan(ctx, s) != ctx {
		t.Fatal("disabled span changed the context")
	}
}

func TestRingWrapsAndKeepsPassesAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	ring.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "dropped"})
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "bcd" {
		t.Fatalf("ring = %v", names)
	}
}

func TestStreamFormats(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "diag", 0).WithExtra("files", "2").End("ok")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %q", buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Extra["files"] != "2" || ev.Detail != "ok" {
		t.Fatalf("end event %+v", ev)
	}

	text := string(formatText(&Event{Time: time.Unix(0, 0), Kind: KindSpanBegin, Scope: ScopePass, Name: "bind", Extra: map[string]string{"b": "2", "a": "1"}}))
	if !strings.Contains(text, "-> [pass] bind {a=1, b=2}") {
		t.Fatalf("text = %q", text)
	}
}

func TestRingLookup(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), ring)
	if Ring(multi) != ring || Ring(Nop) != nil {
		t.Fatal("Ring did not find the buffer")
	}
}

func TestHeartbeatStops(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	h.Stop()
	h.Stop()
	n := len(ring.Snapshot())
	time.Sleep(3 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatal("heartbeat kept running after Stop")
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()
}
