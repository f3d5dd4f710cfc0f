package source

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// StringID identifies an interned string.
type StringID uint32

// NoStringID is reserved for the empty string.
const NoStringID StringID = 0

// Interner maps strings to dense IDs. Interning happens while declarations are
// collected; afterwards the binder only calls Find and Lookup, possibly from
// many goroutines, so every method is guarded.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, inserting it when missing.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	cpy := string([]byte(s))
	id = StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the ID of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup panics on unknown IDs.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len counts interned strings including the reserved empty string.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}
