// # internal/engine/parser/parser.go
package parser

import (
	"bagrules/internal/core/errors"
	"bagrules/internal/engine/graph"
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	ruleSeparator = " bags contain "
	emptyContents = "no other bags."
	entrySep      = ", "
	bagSuffix     = " bag"
)

// maxLineSize caps a single rule line when reading from a stream.
const maxLineSize = 1 << 20

// Parser turns rule text into a container graph, interning every name it
// sees into the table it was created with.
type Parser struct {
	table *graph.SymbolTable
}

func NewParser(table *graph.SymbolTable) *Parser {
	if table == nil {
		table = graph.NewSymbolTable()
	}
	return &Parser{table: table}
}

func (p *Parser) Table() *graph.SymbolTable {
	return p.table
}

// Parse builds a graph from text. Any malformed line aborts the whole parse;
// no partial graph is returned.
func Parse(text string, table *graph.SymbolTable) (*graph.Graph, error) {
	return NewParser(table).Parse(text)
}

func (p *Parser) Parse(text string) (*graph.Graph, error) {
	return p.ParseReader(strings.NewReader(text))
}

func (p *Parser) ParseReader(r io.Reader) (*graph.Graph, error) {
	b := graph.NewBuilder(p.table)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := p.parseLine(b, line); err != nil {
			return nil, errors.AddContext(err, errors.CtxLine, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read rules")
	}

	return b.Build(), nil
}

func (p *Parser) parseLine(b *graph.Builder, line string) error {
	parts := strings.Split(line, ruleSeparator)
	if len(parts) != 2 {
		return parseError("expected exactly one %q separator", strings.TrimSpace(ruleSeparator)).
			WithContext(errors.CtxText, line)
	}
	name, rest := strings.TrimSpace(parts[0]), parts[1]
	if name == "" {
		return parseError("missing container name").WithContext(errors.CtxText, line)
	}

	var contents []graph.Content
	if rest != emptyContents {
		for _, entry := range strings.Split(rest, entrySep) {
			c, err := p.parseEntry(entry)
			if err != nil {
				return errors.AddContext(err, errors.CtxText, line)
			}
			contents = append(contents, c)
		}
	}

	return b.Define(p.table.Intern(name), contents)
}

// parseEntry reads one "<count> <name> bag[s]" item. The trailing period,
// plural marker and bag suffix are stripped in that order.
func (p *Parser) parseEntry(entry string) (graph.Content, error) {
	s := strings.TrimSuffix(entry, ".")
	s = strings.TrimSuffix(s, "s")
	if !strings.HasSuffix(s, bagSuffix) {
		return graph.Content{}, parseError("entry %q does not end in bag or bags", entry)
	}
	s = strings.TrimSuffix(s, bagSuffix)

	count, name, ok := strings.Cut(s, " ")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return graph.Content{}, parseError("entry %q has no container name", entry)
	}
	qty, err := strconv.Atoi(count)
	if err != nil || qty < 0 {
		return graph.Content{}, parseError("entry %q has invalid quantity %q", entry, count)
	}

	return graph.Content{Quantity: qty, Child: p.table.Intern(name)}, nil
}

func parseError(format string, args ...interface{}) *errors.DomainError {
	return errors.Newf(errors.CodeParse, format, args...)
}
