package output

import (
	"bagrules/internal/engine/graph"
	"fmt"
	"strings"
	"unicode"
)

type MermaidGenerator struct {
	graph   *graph.Graph
	metrics map[graph.Symbol]graph.ContainerMetrics
}

func NewMermaidGenerator(g *graph.Graph) *MermaidGenerator {
	return &MermaidGenerator{graph: g}
}

// SetMetrics adds fan-in/fan-out/depth to node labels.
func (m *MermaidGenerator) SetMetrics(metrics map[graph.Symbol]graph.ContainerMetrics) {
	if len(metrics) == 0 {
		m.metrics = nil
		return
	}
	m.metrics = make(map[graph.Symbol]graph.ContainerMetrics, len(metrics))
	for sym, metric := range metrics {
		m.metrics[sym] = metric
	}
}

// Generate renders a left-to-right flowchart with one node per interned
// container and quantity-labelled edges. root gets its own class.
func (m *MermaidGenerator) Generate(root graph.Symbol) (string, error) {
	var b strings.Builder
	table := m.graph.Table()

	b.WriteString("flowchart LR\n")

	names := table.Names()
	ids := makeMermaidIDs(names)

	var leaves, undefined []string
	for i, name := range names {
		sym := graph.Symbol(i)
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids[name], escapeMermaidLabel(m.label(sym, name))))
		c, defined := m.graph.Container(sym)
		switch {
		case !defined:
			undefined = append(undefined, ids[name])
		case len(c.Contents) == 0:
			leaves = append(leaves, ids[name])
		}
	}

	b.WriteString("\n")
	for _, e := range m.graph.Edges() {
		from := ids[table.MustName(e.Parent)]
		to := ids[table.MustName(e.Child)]
		b.WriteString(fmt.Sprintf("  %s -->|%d| %s\n", from, e.Quantity, to))
	}

	b.WriteString("\n")
	b.WriteString("  classDef rootNode fill:#fff3b0,stroke:#b8860b,stroke-width:2px;\n")
	b.WriteString("  classDef leafNode fill:#eeeeee,stroke:#999999;\n")
	b.WriteString("  classDef undefinedNode fill:#ffffff,stroke:#999999,stroke-dasharray:4 2;\n")
	if name, ok := table.Name(root); ok {
		b.WriteString(fmt.Sprintf("  class %s rootNode;\n", ids[name]))
	}
	if len(leaves) > 0 {
		b.WriteString(fmt.Sprintf("  class %s leafNode;\n", strings.Join(leaves, ",")))
	}
	if len(undefined) > 0 {
		b.WriteString(fmt.Sprintf("  class %s undefinedNode;\n", strings.Join(undefined, ",")))
	}

	return b.String(), nil
}

func (m *MermaidGenerator) label(sym graph.Symbol, name string) string {
	if m.metrics == nil {
		return name
	}
	metric, ok := m.metrics[sym]
	if !ok {
		return name
	}
	return fmt.Sprintf("%s\\n(in %d, out %d, depth %d)", name, metric.FanIn, metric.FanOut, metric.Depth)
}

func sanitizeMermaidID(name string) string {
	if name == "" {
		return "c"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "c_" + out
	}
	return out
}

func makeMermaidIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		base := sanitizeMermaidID(name)
		id := base
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		taken[id] = true
		ids[name] = id
	}
	return ids
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
