// # internal/output/dot.go
package output

import (
	"bagrules/internal/engine/graph"
	"fmt"
	"strings"
)

type DOTGenerator struct {
	graph *graph.Graph
}

func NewDOTGenerator(g *graph.Graph) *DOTGenerator {
	return &DOTGenerator{graph: g}
}

// Generate renders the containment graph. root is drawn highlighted and every
// symbol in ancestors is tinted; leaves and undefined containers are greyed.
func (d *DOTGenerator) Generate(root graph.Symbol, ancestors []graph.Symbol) (string, error) {
	var buf strings.Builder
	table := d.graph.Table()

	buf.WriteString("digraph containers {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  overlap=false;\n\n")

	ancestorSet := make(map[graph.Symbol]bool, len(ancestors))
	for _, s := range ancestors {
		ancestorSet[s] = true
	}

	for _, sym := range d.graph.Symbols() {
		name := table.MustName(sym)
		c, _ := d.graph.Container(sym)
		switch {
		case sym == root:
			buf.WriteString(fmt.Sprintf("  %q [fillcolor=\"gold\", style=\"rounded,filled\", color=\"darkgoldenrod\", penwidth=2.0];\n", name))
		case ancestorSet[sym]:
			buf.WriteString(fmt.Sprintf("  %q [fillcolor=\"lightyellow\", style=\"rounded,filled\", color=\"darkslategrey\"];\n", name))
		case len(c.Contents) == 0:
			buf.WriteString(fmt.Sprintf("  %q [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n", name))
		default:
			buf.WriteString(fmt.Sprintf("  %q [color=\"darkslategrey\"];\n", name))
		}
	}

	undefined := d.graph.Undefined()
	if len(undefined) > 0 {
		buf.WriteString("\n  // Referenced but never defined\n")
		for _, sym := range undefined {
			buf.WriteString(fmt.Sprintf("  %q [style=\"rounded,dashed\", color=\"grey\"];\n", table.MustName(sym)))
		}
	}
	buf.WriteString("\n")

	for _, e := range d.graph.Edges() {
		from, to := table.MustName(e.Parent), table.MustName(e.Child)
		if e.Child == root || ancestorSet[e.Child] {
			buf.WriteString(fmt.Sprintf("  %q -> %q [label=\"%d\", color=\"darkgoldenrod\", penwidth=2.0];\n", from, to, e.Quantity))
		} else {
			buf.WriteString(fmt.Sprintf("  %q -> %q [label=\"%d\", color=\"grey\"];\n", from, to, e.Quantity))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
