package graph

// ContainerMetrics describes one container's position in the graph.
type ContainerMetrics struct {
	// Depth is the longest containment chain below the container, counted in
	// edges. Members of a cycle share their component's depth.
	Depth  int
	FanIn  int
	FanOut int
}

// ComputeMetrics returns fan-in, fan-out and depth for every symbol in the
// table, defined or not.
func ComputeMetrics(g *Graph) map[Symbol]ContainerMetrics {
	n := g.table.Len()
	nodes := make([]Symbol, 0, n)
	for i := 0; i < n; i++ {
		nodes = append(nodes, Symbol(i))
	}

	adjacency := make(map[Symbol][]Symbol, len(g.containers))
	fanIn := make(map[Symbol]int, n)
	for _, parent := range g.Symbols() {
		seen := make(map[Symbol]bool)
		for _, c := range g.containers[parent].Contents {
			if seen[c.Child] {
				continue
			}
			seen[c.Child] = true
			adjacency[parent] = append(adjacency[parent], c.Child)
			fanIn[c.Child]++
		}
	}

	componentOf, components := stronglyConnectedComponents(nodes, adjacency)
	componentEdges := make(map[int]map[int]bool, len(components))
	for _, from := range nodes {
		fromComp := componentOf[from]
		for _, to := range adjacency[from] {
			toComp := componentOf[to]
			if fromComp == toComp {
				continue
			}
			if componentEdges[fromComp] == nil {
				componentEdges[fromComp] = make(map[int]bool)
			}
			componentEdges[fromComp][toComp] = true
		}
	}

	// Tarjan emits components in reverse topological order, so every
	// successor's depth is final before its predecessors are visited.
	depthByComp := make([]int, len(components))
	for comp := range components {
		maxDepth := 0
		for next := range componentEdges[comp] {
			if candidate := 1 + depthByComp[next]; candidate > maxDepth {
				maxDepth = candidate
			}
		}
		depthByComp[comp] = maxDepth
	}

	metrics := make(map[Symbol]ContainerMetrics, n)
	for _, sym := range nodes {
		metrics[sym] = ContainerMetrics{
			Depth:  depthByComp[componentOf[sym]],
			FanIn:  fanIn[sym],
			FanOut: len(adjacency[sym]),
		}
	}
	return metrics
}

func stronglyConnectedComponents(nodes []Symbol, adjacency map[Symbol][]Symbol) (map[Symbol]int, [][]Symbol) {
	index := 0
	stack := make([]Symbol, 0, len(nodes))
	onStack := make(map[Symbol]bool, len(nodes))
	indexByNode := make(map[Symbol]int, len(nodes))
	lowLink := make(map[Symbol]int, len(nodes))
	componentOf := make(map[Symbol]int, len(nodes))
	components := make([][]Symbol, 0)

	var strongConnect func(Symbol)
	strongConnect = func(v Symbol) {
		indexByNode[v] = index
		lowLink[v] = index
		index++

		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adjacency[v] {
			if _, seen := indexByNode[w]; !seen {
				strongConnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] && indexByNode[w] < lowLink[v] {
				lowLink[v] = indexByNode[w]
			}
		}

		if lowLink[v] != indexByNode[v] {
			return
		}

		component := make([]Symbol, 0)
		for {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[last] = false
			component = append(component, last)
			if last == v {
				break
			}
		}
		sortSymbols(component)
		compID := len(components)
		components = append(components, component)
		for _, s := range component {
			componentOf[s] = compID
		}
	}

	for _, node := range nodes {
		if _, seen := indexByNode[node]; !seen {
			strongConnect(node)
		}
	}

	return componentOf, components
}
