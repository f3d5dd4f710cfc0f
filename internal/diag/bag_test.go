package diag

import (
	"sync"
	"testing"

	"semcore/internal/source"
)

func TestBagSortDedupAndLimit(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	r.Report(SemaNoOverload, SevError, source.Span{Start: 20, End: 24}, "no overload", nil)
	r.Report(SemaNameNotFound, SevError, source.Span{Start: 3, End: 4}, "x", nil)
	r.Report(SemaNameNotFound, SevError, source.Span{Start: 3, End: 4}, "x", nil)
	r.Report(SemaSelfReference, SevInfo, source.Span{Start: 3, End: 4}, "self", nil)

	bag.Dedup()
	bag.Sort()
	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Code != SemaNameNotFound || items[1].Code != SemaSelfReference || items[2].Code != SemaNoOverload {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}

	limited := NewBag(1)
	limited.Add(New(SevError, SemaNoOverload, source.Span{}, "a"))
	if limited.Add(New(SevError, SemaNoOverload, source.Span{}, "b")) {
		t.Fatalf("bag must refuse diagnostics beyond its limit")
	}
}

func TestBagConcurrentAdd(t *testing.T) {
	bag := NewBag(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bag.Add(New(SevWarning, SemaSelfReference, source.Span{}, "w"))
			}
		}()
	}
	wg.Wait()
	if bag.Len() != 800 {
		t.Fatalf("expected 800 diagnostics, got %d", bag.Len())
	}
}

func TestCodeIdentifiers(t *testing.T) {
	if got := SemaNameNotFound.ID(); got != "SEM3005" {
		t.Fatalf("ID = %q", got)
	}
	if got := SemaAmbiguousCall.Key(); got != "ERR_AmbigCall" {
		t.Fatalf("Key = %q", got)
	}
	if got := Code(3999).Key(); got != "ERR_Unknown" {
		t.Fatalf("unknown code key = %q", got)
	}
}

func TestSeverityNames(t *testing.T) {
	for sev, want := range map[Severity]string{
		SevInfo:     "INFO",
		SevWarning:  "WARNING",
		SevError:    "ERROR",
		Severity(9): "UNKNOWN",
	} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
}
