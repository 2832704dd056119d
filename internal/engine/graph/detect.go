package graph

// DetectCycles reports the containment cycles closed by back edges of one
// depth-first walk over the defined containers. Every strongly connected
// region holding a cycle yields at least one entry, but elementary cycles
// that re-enter already visited containers are not enumerated. Valid rule
// sets are acyclic, so an empty result is the normal case.
func DetectCycles(g *Graph) [][]Symbol {
	var cycles [][]Symbol
	visited := make(map[Symbol]bool)
	onStack := make(map[Symbol]bool)

	for _, sym := range g.Symbols() {
		if !visited[sym] {
			g.findCycles(sym, visited, onStack, nil, &cycles)
		}
	}

	return cycles
}

func (g *Graph) findCycles(curr Symbol, visited, onStack map[Symbol]bool, path []Symbol, cycles *[][]Symbol) {
	visited[curr] = true
	onStack[curr] = true
	path = append(path, curr)

	contents, _ := g.contents(curr)
	for _, c := range contents {
		next := c.Child
		if onStack[next] {
			cycleStart := -1
			for i, sym := range path {
				if sym == next {
					cycleStart = i
					break
				}
			}
			if cycleStart != -1 {
				cycle := make([]Symbol, len(path)-cycleStart)
				copy(cycle, path[cycleStart:])
				*cycles = append(*cycles, cycle)
			}
		} else if !visited[next] {
			g.findCycles(next, visited, onStack, path, cycles)
		}
	}

	onStack[curr] = false
}

// FindContainmentChain returns the shortest chain of containers leading from
// outer down to inner, both ends included.
func FindContainmentChain(g *Graph, outer, inner Symbol) ([]Symbol, bool) {
	if !g.IsDefined(outer) {
		return nil, false
	}
	if outer == inner {
		return []Symbol{outer}, true
	}

	queue := []Symbol{outer}
	visited := map[Symbol]bool{outer: true}
	prev := make(map[Symbol]Symbol)

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		contents, _ := g.contents(curr)
		for _, c := range contents {
			next := c.Child
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = curr

			if next == inner {
				path := []Symbol{inner}
				for node := inner; node != outer; {
					p, ok := prev[node]
					if !ok {
						return nil, false
					}
					path = append(path, p)
					node = p
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, true
			}

			queue = append(queue, next)
		}
	}

	return nil, false
}
