package graph

import "strconv"

// Symbol is a dense identifier for a container name. Symbols are assigned in
// order of first appearance starting at zero.
type Symbol uint32

// SymbolTable interns container names. The mapping is append-only: once a name
// has a Symbol it keeps it for the life of the table.
//
// A table is owned by whoever builds the graph and is passed explicitly to the
// parser and queries; it is not safe for concurrent mutation.
type SymbolTable struct {
	names   []string
	symbols map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		names:   make([]string, 0, 64),
		symbols: make(map[string]Symbol, 64),
	}
}

// Intern returns the Symbol for name, allocating the next one if name has not
// been seen before.
func (t *SymbolTable) Intern(name string) Symbol {
	if sym, ok := t.symbols[name]; ok {
		return sym
	}
	sym := Symbol(len(t.names))
	t.names = append(t.names, name)
	t.symbols[name] = sym
	return sym
}

// Lookup resolves name without allocating.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	if t == nil {
		return 0, false
	}
	sym, ok := t.symbols[name]
	return sym, ok
}

func (t *SymbolTable) Name(sym Symbol) (string, bool) {
	if t == nil || int(sym) >= len(t.names) {
		return "", false
	}
	return t.names[sym], true
}

// MustName is Name for symbols known to come from this table. Unknown symbols
// render as "#<n>".
func (t *SymbolTable) MustName(sym Symbol) string {
	if name, ok := t.Name(sym); ok {
		return name
	}
	return "#" + strconv.Itoa(int(sym))
}

func (t *SymbolTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns every interned name in Symbol order.
func (t *SymbolTable) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}
