package parser

import (
	"bagrules/internal/core/errors"
	"bagrules/internal/engine/graph"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleRules = `light red bags contain 1 bright white bag, 2 muted yellow bags.
dark orange bags contain 3 bright white bags, 4 muted yellow bags.
bright white bags contain 1 shiny gold bag.
muted yellow bags contain 2 shiny gold bags, 9 faded blue bags.
shiny gold bags contain 1 dark olive bag, 2 vibrant plum bags.
dark olive bags contain 3 faded blue bags, 4 dotted black bags.
vibrant plum bags contain 5 faded blue bags, 6 dotted black bags.
faded blue bags contain no other bags.
dotted black bags contain no other bags.`

func TestParse_Example(t *testing.T) {
	table := graph.NewSymbolTable()
	g, err := Parse(exampleRules, table)
	require.NoError(t, err)

	assert.Equal(t, 9, g.Len())
	assert.Equal(t, 9, table.Len())
	assert.Equal(t, 13, g.EdgeCount())
	assert.Empty(t, g.Undefined())

	gold, ok := table.Lookup("shiny gold")
	require.True(t, ok)
	c, ok := g.Container(gold)
	require.True(t, ok)
	require.Len(t, c.Contents, 2)

	olive, _ := table.Lookup("dark olive")
	plum, _ := table.Lookup("vibrant plum")
	assert.Equal(t, graph.Content{Quantity: 1, Child: olive}, c.Contents[0])
	assert.Equal(t, graph.Content{Quantity: 2, Child: plum}, c.Contents[1])

	blue, _ := table.Lookup("faded blue")
	leaf, ok := g.Container(blue)
	require.True(t, ok)
	assert.Empty(t, leaf.Contents)
}

func TestParse_InternsContentsBeforeHead(t *testing.T) {
	table := graph.NewSymbolTable()
	_, err := Parse("shiny gold bags contain 2 dark red bags.\n", table)
	require.NoError(t, err)

	assert.Equal(t, []string{"dark red", "shiny gold"}, table.Names())
}

func TestParse_Deterministic(t *testing.T) {
	first, err := Parse(exampleRules, graph.NewSymbolTable())
	require.NoError(t, err)
	second, err := Parse(exampleRules, graph.NewSymbolTable())
	require.NoError(t, err)

	assert.Equal(t, renderEdges(first), renderEdges(second))
}

func TestParse_ToleratesBlankLinesAndCRLF(t *testing.T) {
	text := "\r\nfaded blue bags contain no other bags.\r\n\r\nshiny gold bags contain 3 faded blue bags.\r\n"
	g, err := Parse(text, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestParse_UndefinedReferenceGetsSymbol(t *testing.T) {
	table := graph.NewSymbolTable()
	g, err := Parse("shiny gold bags contain 2 pale green bags.", table)
	require.NoError(t, err)

	green, ok := table.Lookup("pale green")
	require.True(t, ok)
	assert.False(t, g.IsDefined(green))
	assert.Equal(t, []graph.Symbol{green}, g.Undefined())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code errors.ErrorCode
		line int
	}{
		{
			name: "missing separator",
			text: "shiny gold bags hold 2 dark red bags.",
			code: errors.CodeParse,
			line: 1,
		},
		{
			name: "separator twice",
			text: "a bags contain b bags contain no other bags.",
			code: errors.CodeParse,
			line: 1,
		},
		{
			name: "non numeric quantity",
			text: "faded blue bags contain no other bags.\nshiny gold bags contain two faded blue bags.",
			code: errors.CodeParse,
			line: 2,
		},
		{
			name: "negative quantity",
			text: "shiny gold bags contain -1 faded blue bags.",
			code: errors.CodeParse,
			line: 1,
		},
		{
			name: "missing name",
			text: "shiny gold bags contain 3 bags.",
			code: errors.CodeParse,
			line: 1,
		},
		{
			name: "missing bag suffix",
			text: "shiny gold bags contain 3 faded blue.",
			code: errors.CodeParse,
			line: 1,
		},
		{
			name: "empty head",
			text: " bags contain no other bags.",
			code: errors.CodeParse,
			line: 1,
		},
		{
			name: "duplicate definition",
			text: "faded blue bags contain no other bags.\n\nfaded blue bags contain 1 shiny gold bag.",
			code: errors.CodeDuplicate,
			line: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.text, nil)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.IsCode(err, tt.code), "unexpected error: %v", err)

			var de *errors.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.line, de.Context[errors.CtxLine])
		})
	}
}

func TestParse_EntryNameTrimmed(t *testing.T) {
	g, err := Parse("light red bags contain 1  shiny gold bag.\nshiny gold bags contain no other bags.", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.Empty(t, g.Undefined())

	gold, err := g.Resolve("shiny gold")
	require.NoError(t, err)
	red, err := g.Resolve("light red")
	require.NoError(t, err)
	c, ok := g.Container(red)
	require.True(t, ok)
	require.Len(t, c.Contents, 1)
	assert.Equal(t, gold, c.Contents[0].Child)
}

func TestParse_ZeroQuantityAccepted(t *testing.T) {
	g, err := Parse("shiny gold bags contain 0 faded blue bags.", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
}

func renderEdges(g *graph.Graph) string {
	var b strings.Builder
	for _, e := range g.Edges() {
		b.WriteString(g.Table().MustName(e.Parent))
		b.WriteString(" -> ")
		b.WriteString(g.Table().MustName(e.Child))
		b.WriteString("\n")
	}
	return b.String()
}
