package graph

import (
	"bagrules/internal/core/errors"
	"math/bits"
)

// DefaultMaxDepth bounds how deep a nested-weight traversal may go before it
// is treated as a logic error.
const DefaultMaxDepth = 10000

type WeightOptions struct {
	// Strict rejects children that were referenced but never defined instead
	// of treating them as empty leaves.
	Strict bool
	// MaxDepth limits the nesting depth; zero means DefaultMaxDepth.
	MaxDepth int
	// Cache, when set, keeps computed weights across queries. It must only
	// ever be used with a single graph. Weights that counted an undefined
	// child as an empty leaf are never stored, so strict and permissive
	// queries can share one cache.
	Cache *LRUCache[Symbol, uint64]
}

type frame struct {
	sym      Symbol
	expanded bool
}

const (
	unvisited uint8 = iota
	onPath
	done
)

// NestedWeight computes weight(root) = 1 + sum(q * weight(child)) with an
// explicit stack, so call depth stays constant regardless of input shape.
func NestedWeight(g *Graph, root Symbol, opts WeightOptions) (uint64, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	memo := make(map[Symbol]uint64)
	state := make(map[Symbol]uint8)
	// partial marks weights that depend on an undefined child.
	partial := make(map[Symbol]bool)
	stack := []frame{{sym: root}}
	depth := 0

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if state[top.sym] == done {
			stack = stack[:len(stack)-1]
			continue
		}

		if !top.expanded {
			sym := top.sym
			if opts.Cache != nil {
				if w, ok := opts.Cache.Get(sym); ok {
					memo[sym] = w
					state[sym] = done
					stack = stack[:len(stack)-1]
					continue
				}
			}

			contents, ok := g.contents(sym)
			if !ok {
				if opts.Strict {
					return 0, errors.Newf(errors.CodeUndefinedContainer, "container referenced but never defined").
						WithContext(errors.CtxSymbol, g.table.MustName(sym))
				}
				memo[sym] = 1
				partial[sym] = true
				state[sym] = done
				stack = stack[:len(stack)-1]
				continue
			}

			depth++
			if depth > maxDepth {
				return 0, errors.Newf(errors.CodeLogic, "nesting depth exceeds %d", maxDepth).
					WithContext(errors.CtxSymbol, g.table.MustName(sym))
			}
			top.expanded = true
			state[sym] = onPath

			for i := len(contents) - 1; i >= 0; i-- {
				child := contents[i].Child
				switch state[child] {
				case onPath:
					return 0, errors.Newf(errors.CodeLogic, "containment cycle detected").
						WithContext(errors.CtxSymbol, g.table.MustName(child))
				case unvisited:
					stack = append(stack, frame{sym: child})
				}
			}
			continue
		}

		sym := top.sym
		contents, _ := g.contents(sym)
		total := uint64(1)
		for _, c := range contents {
			if partial[c.Child] {
				partial[sym] = true
			}
			if c.Quantity < 0 {
				return 0, errors.Newf(errors.CodeLogic, "negative quantity %d", c.Quantity).
					WithContext(errors.CtxSymbol, g.table.MustName(sym))
			}
			hi, lo := bits.Mul64(uint64(c.Quantity), memo[c.Child])
			var carry uint64
			total, carry = bits.Add64(total, lo, 0)
			if hi != 0 || carry != 0 {
				return 0, errors.Newf(errors.CodeLogic, "nested weight overflows uint64").
					WithContext(errors.CtxSymbol, g.table.MustName(sym))
			}
		}

		memo[sym] = total
		state[sym] = done
		if opts.Cache != nil && !partial[sym] {
			opts.Cache.Put(sym, total)
		}
		depth--
		stack = stack[:len(stack)-1]
	}

	return memo[root], nil
}

// CountNestedBags answers how many bags sit inside rootName, not counting the
// root itself.
func CountNestedBags(g *Graph, rootName string, opts WeightOptions) (uint64, error) {
	root, err := g.Resolve(rootName)
	if err != nil {
		return 0, err
	}
	w, err := NestedWeight(g, root, opts)
	if err != nil {
		return 0, errors.AddContext(err, errors.CtxRoot, rootName)
	}
	return w - 1, nil
}
