package symbols

// SymbolID identifies a symbol in the table arena.
type SymbolID uint32

// NoSymbolID marks absence of a symbol.
const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbolID }
