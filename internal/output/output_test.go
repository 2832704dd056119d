// # internal/output/output_test.go
package output

import (
	"bagrules/internal/engine/graph"
	"bagrules/internal/engine/parser"
	"strings"
	"testing"
)

const rules = `shiny gold bags contain 2 dark red bags, 1 pale green bag.
dark red bags contain 3 faded blue bags.
faded blue bags contain no other bags.
bright white bags contain 1 shiny gold bag.`

func parseRules(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := parser.Parse(rules, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDOTGenerator(t *testing.T) {
	g := parseRules(t)
	root, _ := g.Table().Lookup("shiny gold")
	white, _ := g.Table().Lookup("bright white")

	dot, err := NewDOTGenerator(g).Generate(root, []graph.Symbol{white})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(dot, "digraph containers") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(dot, `"shiny gold" -> "dark red" [label="2"`) {
		t.Error("DOT output missing edge shiny gold -> dark red")
	}
	if !strings.Contains(dot, `"shiny gold" [fillcolor="gold"`) {
		t.Error("DOT output missing root highlight")
	}
	if !strings.Contains(dot, `"pale green" [style="rounded,dashed"`) {
		t.Error("DOT output missing undefined container")
	}
}

func TestTSVGenerator(t *testing.T) {
	g := parseRules(t)

	tsv, err := NewTSVGenerator(g).Generate()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(tsv), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines in TSV, got %d", len(lines))
	}
	if lines[0] != "Parent\tChild\tQuantity" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(tsv, "shiny gold\tdark red\t2\n") {
		t.Errorf("Missing shiny gold row in:\n%s", tsv)
	}
}

func TestTSVGenerator_Metrics(t *testing.T) {
	g := parseRules(t)

	tsv, err := NewTSVGenerator(g).GenerateMetrics(graph.ComputeMetrics(g))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tsv, "pale green\tfalse\t1\t0\t0\n") {
		t.Errorf("Missing undefined container row in:\n%s", tsv)
	}
	if !strings.Contains(tsv, "bright white\ttrue\t0\t1\t3\n") {
		t.Errorf("Missing bright white row in:\n%s", tsv)
	}
}

func TestMermaidGenerator(t *testing.T) {
	g := parseRules(t)
	root, _ := g.Table().Lookup("shiny gold")

	gen := NewMermaidGenerator(g)
	gen.SetMetrics(graph.ComputeMetrics(g))
	out, err := gen.Generate(root)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"flowchart LR",
		"shiny_gold -->|2| dark_red",
		"class shiny_gold rootNode;",
		"class faded_blue leafNode;",
		"class pale_green undefinedNode;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Mermaid output missing %q:\n%s", want, out)
		}
	}
}

func TestMakeMermaidIDs_Unique(t *testing.T) {
	ids := makeMermaidIDs([]string{"dark red", "dark-red", "dark_red_2", "9 lives"})
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q in %v", id, ids)
		}
		seen[id] = true
	}
	if ids["9 lives"] != "c_9_lives" {
		t.Errorf("Expected digit-leading id to be prefixed, got %q", ids["9 lives"])
	}
}
