package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"semcore/internal/source"
)

// Symbols is the arena behind a Table. Slot 0 stays empty so the zero
// SymbolID never names a declaration; IDs are stable for the lifetime of
// the compilation because Collect only appends.
type Symbols struct {
	data  []Symbol
	names *source.Interner
}

// NewSymbols creates an arena that interns symbol names into names.
func NewSymbols(capacity uint32, names *source.Interner) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{
		data:  make([]Symbol, 1, capacity+1),
		names: names,
	}
}

// New copies sym into the arena, interning its name, and returns its ID.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols: nil symbol")
	}
	id, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	sym.NameID = s.names.Intern(sym.Name)
	s.data = append(s.data, *sym)
	return SymbolID(id)
}

func (s *Symbols) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len excludes the empty slot.
func (s *Symbols) Len() int { return len(s.data) - 1 }
