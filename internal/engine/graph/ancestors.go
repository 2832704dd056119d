package graph

// ParentIndex maps a child to the containers that directly hold it. A parent
// is listed once per child even if it names the child in several entries.
type ParentIndex map[Symbol][]Symbol

// BuildParentIndex inverts the containment edges of g.
func BuildParentIndex(g *Graph) ParentIndex {
	idx := make(ParentIndex, len(g.containers))
	for _, parent := range g.Symbols() {
		seen := make(map[Symbol]bool, len(g.containers[parent].Contents))
		for _, c := range g.containers[parent].Contents {
			if seen[c.Child] {
				continue
			}
			seen[c.Child] = true
			idx[c.Child] = append(idx[c.Child], parent)
		}
	}
	return idx
}

// Ancestors returns every container that can transitively hold root, sorted
// by symbol. root itself appears only if it is its own ancestor.
func Ancestors(g *Graph, root Symbol) []Symbol {
	idx := BuildParentIndex(g)

	seen := make(map[Symbol]bool)
	queue := make([]Symbol, 0, len(idx[root]))
	for _, p := range idx[root] {
		if !seen[p] {
			seen[p] = true
			queue = append(queue, p)
		}
	}

	out := append([]Symbol(nil), queue...)
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range idx[curr] {
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
			out = append(out, next)
		}
	}
	sortSymbols(out)
	return out
}

// CountAncestors answers how many distinct containers can eventually hold
// rootName. A name that appears only as contents is valid and may yield zero.
func CountAncestors(g *Graph, rootName string) (int, error) {
	root, err := g.Resolve(rootName)
	if err != nil {
		return 0, err
	}
	return len(Ancestors(g, root)), nil
}
