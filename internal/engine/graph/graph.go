package graph

import (
	"bagrules/internal/core/errors"
	"sort"
)

// Content is one (quantity, child) entry of a container definition.
type Content struct {
	Quantity int
	Child    Symbol
}

// Container holds the direct contents of one named bag. An empty Contents
// slice is a terminal node.
type Container struct {
	Contents []Content
}

type Edge struct {
	Parent   Symbol
	Child    Symbol
	Quantity int
}

// Graph maps each defined container to its direct contents. It is immutable
// once built; every accessor hands out copies.
type Graph struct {
	table      *SymbolTable
	containers map[Symbol]*Container
	edgeCount  int
}

// Builder assembles a Graph one definition at a time.
type Builder struct {
	g     *Graph
	built bool
}

func NewBuilder(table *SymbolTable) *Builder {
	if table == nil {
		table = NewSymbolTable()
	}
	return &Builder{
		g: &Graph{
			table:      table,
			containers: make(map[Symbol]*Container),
		},
	}
}

// Define records the contents of sym. Each container may be defined once.
func (b *Builder) Define(sym Symbol, contents []Content) error {
	if b.built {
		return errors.New(errors.CodeInternal, "builder already finalised")
	}
	if _, exists := b.g.containers[sym]; exists {
		return errors.Newf(errors.CodeDuplicate, "container defined more than once").
			WithContext(errors.CtxSymbol, b.g.table.MustName(sym))
	}
	b.g.containers[sym] = &Container{Contents: append([]Content(nil), contents...)}
	b.g.edgeCount += len(contents)
	return nil
}

// Build finalises the graph. The builder cannot be used afterwards.
func (b *Builder) Build() *Graph {
	b.built = true
	return b.g
}

func (g *Graph) Table() *SymbolTable {
	return g.table
}

// Len returns the number of defined containers.
func (g *Graph) Len() int {
	return len(g.containers)
}

func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Container returns a copy of sym's definition. ok is false for names that
// were referenced as contents but never defined.
func (g *Graph) Container(sym Symbol) (Container, bool) {
	c, ok := g.containers[sym]
	if !ok {
		return Container{}, false
	}
	return Container{Contents: append([]Content(nil), c.Contents...)}, true
}

// IsDefined reports whether sym has a definition of its own.
func (g *Graph) IsDefined(sym Symbol) bool {
	_, ok := g.containers[sym]
	return ok
}

// contents returns sym's contents without copying. Callers must not modify
// the returned slice.
func (g *Graph) contents(sym Symbol) ([]Content, bool) {
	c, ok := g.containers[sym]
	if !ok {
		return nil, false
	}
	return c.Contents, true
}

// Symbols returns the defined symbols in ascending order.
func (g *Graph) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(g.containers))
	for sym := range g.containers {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

// Edges lists every containment edge ordered by parent, then by position in
// the parent's definition.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for _, parent := range g.Symbols() {
		for _, c := range g.containers[parent].Contents {
			edges = append(edges, Edge{Parent: parent, Child: c.Child, Quantity: c.Quantity})
		}
	}
	return edges
}

// Undefined returns symbols that appear as contents but have no definition.
func (g *Graph) Undefined() []Symbol {
	seen := make(map[Symbol]bool)
	var out []Symbol
	for _, c := range g.containers {
		for _, content := range c.Contents {
			if _, ok := g.containers[content.Child]; ok || seen[content.Child] {
				continue
			}
			seen[content.Child] = true
			out = append(out, content.Child)
		}
	}
	sortSymbols(out)
	return out
}

// Resolve maps a container name to its Symbol. Names that never appeared in
// the input fail with CodeUnknownRoot.
func (g *Graph) Resolve(name string) (Symbol, error) {
	sym, ok := g.table.Lookup(name)
	if !ok {
		return 0, errors.Newf(errors.CodeUnknownRoot, "container never mentioned in input").
			WithContext(errors.CtxRoot, name)
	}
	return sym, nil
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
}
