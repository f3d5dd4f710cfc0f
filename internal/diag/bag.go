package diag

import (
	"sort"
	"sync"
)

// Bag is a bounded, concurrency-safe diagnostic collection.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
	max   int
}

// NewBag creates a bag that keeps at most max diagnostics; max <= 0 means
// unbounded.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 256 {
		capHint = 16
	}
	return &Bag{items: make([]Diagnostic, 0, capHint), max: max}
}

// Add appends d unless the limit is reached.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether at least one diagnostic is an error.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns a copy of the collected diagnostics.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// Merge appends the diagnostics of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	items := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.items)+len(items) > b.max {
		b.max = len(b.items) + len(items)
	}
	b.items = append(b.items, items...)
}

// Filter keeps diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// Sort orders diagnostics by file, start, end, severity (desc) and code.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

type dedupKey struct {
	code    Code
	primary string
	msg     string
}

// Dedup drops diagnostics repeating code, primary span and message.
func (b *Bag) Dedup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[dedupKey]bool, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := dedupKey{d.Code, d.Primary.String(), d.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
