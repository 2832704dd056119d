// # internal/output/tsv.go
package output

import (
	"bagrules/internal/engine/graph"
	"fmt"
	"strings"
)

type TSVGenerator struct {
	graph *graph.Graph
}

func NewTSVGenerator(g *graph.Graph) *TSVGenerator {
	return &TSVGenerator{graph: g}
}

func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder
	table := t.graph.Table()

	buf.WriteString("Parent\tChild\tQuantity\n")
	for _, e := range t.graph.Edges() {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%d\n", table.MustName(e.Parent), table.MustName(e.Child), e.Quantity))
	}

	return buf.String(), nil
}

// GenerateMetrics writes one row per interned container with its fan-in,
// fan-out and depth.
func (t *TSVGenerator) GenerateMetrics(metrics map[graph.Symbol]graph.ContainerMetrics) (string, error) {
	var buf strings.Builder
	table := t.graph.Table()

	buf.WriteString("Container\tDefined\tFanIn\tFanOut\tDepth\n")
	for i := 0; i < table.Len(); i++ {
		sym := graph.Symbol(i)
		m := metrics[sym]
		buf.WriteString(fmt.Sprintf("%s\t%t\t%d\t%d\t%d\n", table.MustName(sym), t.graph.IsDefined(sym), m.FanIn, m.FanOut, m.Depth))
	}

	return buf.String(), nil
}
