package symbols_test

import (
	"testing"

	"semcore/internal/source"
	"semcore/internal/symbols"
)

func TestArenaInternsNames(t *testing.T) {
	names := source.NewInterner()
	arena := symbols.NewSymbols(0, names)
	if arena.Len() != 0 || arena.Get(symbols.NoSymbolID) != nil {
		t.Fatal("empty arena exposes the reserved slot")
	}
	sym := &symbols.Symbol{Kind: symbols.KindField, Name: "Count"}
	id := arena.New(sym)
	if !id.IsValid() || arena.Len() != 1 {
		t.Fatalf("New = %v, Len = %d", id, arena.Len())
	}
	got := arena.Get(id)
	if got.Name != "Count" || got.NameID != sym.NameID {
		t.Fatalf("stored %+v", got)
	}
	if name, ok := names.Lookup(got.NameID); !ok || name != "Count" {
		t.Fatalf("interned name = %q, %v", name, ok)
	}
	if arena.Get(id+1) != nil {
		t.Fatal("Get past the end returned a symbol")
	}
}
