package app

import (
	"bagrules/internal/core/config"
	"bagrules/internal/core/errors"
	"bagrules/internal/engine/graph"
	"bagrules/internal/engine/parser"
	"bagrules/internal/shared/observability"
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Report is the outcome of one run against a rule set.
type Report struct {
	RunID      string
	Root       string
	Containers int
	Edges      int
	Undefined  []string
	Cycles     [][]string

	Ancestors     int
	AncestorNames []string
	NestedBags    uint64

	// Chain is the shortest containment path from Config.Query.Trace down
	// to Root, when a trace was requested and one exists.
	Chain []string
}

type App struct {
	Config *config.Config
	Table  *graph.SymbolTable
	Graph  *graph.Graph
	// Stdin backs the "-" input path.
	Stdin io.Reader

	runID       string
	logger      *slog.Logger
	weightCache *graph.LRUCache[graph.Symbol, uint64]
	match       []glob.Glob
	include     []glob.Glob
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	include, err := compileGlobs(cfg.Input.Include, "input include")
	if err != nil {
		return nil, err
	}
	match, err := compileGlobs(cfg.Output.Match, "output match")
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	return &App{
		Config:      cfg,
		Table:       graph.NewSymbolTable(),
		Stdin:       os.Stdin,
		runID:       runID,
		logger:      slog.Default().With("run_id", runID),
		weightCache: graph.NewLRUCache[graph.Symbol, uint64](cfg.Query.CacheSize),
		match:       match,
		include:     include,
	}, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, "invalid "+label+" pattern "+p)
		}
		out = append(out, g)
	}
	return out, nil
}

// Load reads every configured input and parses it into a fresh graph.
func (a *App) Load(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, "app.Load",
		attribute.StringSlice("input.paths", a.Config.Input.Paths))
	defer span.End()

	text, err := a.readInputs(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := a.LoadText(text); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.Int("graph.containers", a.Graph.Len()),
		attribute.Int("graph.edges", a.Graph.EdgeCount()))
	return nil
}

// LoadText parses text directly, bypassing the configured inputs.
func (a *App) LoadText(text string) error {
	start := time.Now()
	table := graph.NewSymbolTable()
	g, err := parser.Parse(text, table)
	elapsed := time.Since(start)
	observability.ParsingDuration.Observe(elapsed.Seconds())
	if err != nil {
		observability.ParseErrorsTotal.WithLabelValues(string(errors.CodeOf(err))).Inc()
		return err
	}

	a.Table = table
	a.Graph = g
	a.weightCache = graph.NewLRUCache[graph.Symbol, uint64](a.Config.Query.CacheSize)

	observability.RulesParsedTotal.Add(float64(g.Len()))
	observability.GraphNodes.Set(float64(g.Len()))
	observability.GraphEdges.Set(float64(g.EdgeCount()))
	observability.UndefinedContainers.Set(float64(len(g.Undefined())))

	a.logger.Info("rules parsed",
		"containers", g.Len(),
		"edges", g.EdgeCount(),
		"symbols", table.Len(),
		"elapsed", elapsed)
	return nil
}

// Run answers both queries for the configured root and writes any requested
// exports. The graph is loaded first if that has not happened yet.
func (a *App) Run(ctx context.Context) (report Report, err error) {
	ctx, span := observability.StartSpan(ctx, "app.Run",
		attribute.String("run.id", a.runID),
		attribute.String("query.root", a.Config.Query.Root))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(errors.CodeOf(err)))
		}
		span.End()
	}()

	if a.Graph == nil {
		if err := a.Load(ctx); err != nil {
			return Report{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	g := a.Graph
	root := a.Config.Query.Root
	report = Report{
		RunID:      a.runID,
		Root:       root,
		Containers: g.Len(),
		Edges:      g.EdgeCount(),
		Undefined:  a.symbolNames(g.Undefined()),
	}

	if err := a.checkCycles(g, &report); err != nil {
		return report, err
	}

	rootSym, err := g.Resolve(root)
	if err != nil {
		return report, err
	}

	_, ancestorSpan := observability.StartSpan(ctx, "graph.Ancestors")
	start := time.Now()
	ancestors := graph.Ancestors(g, rootSym)
	observability.QueryDuration.WithLabelValues("ancestors").Observe(time.Since(start).Seconds())
	ancestorSpan.SetAttributes(attribute.Int("ancestors", len(ancestors)))
	ancestorSpan.End()
	report.Ancestors = len(ancestors)
	if a.Config.Output.List {
		report.AncestorNames = a.filterNames(a.symbolNames(ancestors))
	}

	nested, err := a.nestedBags(ctx, root)
	if err != nil {
		return report, err
	}
	report.NestedBags = nested

	if trace := a.Config.Query.Trace; trace != "" {
		report.Chain, err = a.traceChain(trace, rootSym)
		if err != nil {
			return report, err
		}
	}

	a.logger.Info("queries answered",
		"root", root,
		"ancestors", report.Ancestors,
		"nested_bags", report.NestedBags)

	if err := a.GenerateOutputs(rootSym, ancestors); err != nil {
		return report, err
	}
	if err := a.writeMetrics(); err != nil {
		return report, err
	}
	return report, nil
}

func (a *App) checkCycles(g *graph.Graph, report *Report) error {
	cycles := graph.DetectCycles(g)
	for _, c := range cycles {
		names := a.symbolNames(c)
		report.Cycles = append(report.Cycles, names)
		a.logger.Warn("containment cycle", "containers", strings.Join(names, " -> "))
	}
	if len(cycles) > 0 && a.Config.Query.Strict {
		return errors.Newf(errors.CodeLogic, "rule set contains %d containment cycle(s)", len(cycles))
	}
	return nil
}

func (a *App) nestedBags(ctx context.Context, root string) (uint64, error) {
	_, span := observability.StartSpan(ctx, "graph.NestedBags")
	defer span.End()

	hitsBefore, missesBefore := a.weightCache.Stats()
	start := time.Now()
	n, err := graph.CountNestedBags(a.Graph, root, graph.WeightOptions{
		Strict:   a.Config.Query.Strict,
		MaxDepth: a.Config.Query.MaxDepth,
		Cache:    a.weightCache,
	})
	observability.QueryDuration.WithLabelValues("nested").Observe(time.Since(start).Seconds())

	hits, misses := a.weightCache.Stats()
	observability.WeightCacheHits.Add(float64(hits - hitsBefore))
	observability.WeightCacheMisses.Add(float64(misses - missesBefore))
	span.SetAttributes(
		attribute.Int64("cache.hits", int64(hits-hitsBefore)),
		attribute.Int64("cache.misses", int64(misses-missesBefore)))
	if err != nil {
		span.RecordError(err)
	}
	return n, err
}

func (a *App) traceChain(outer string, inner graph.Symbol) ([]string, error) {
	outerSym, err := a.Graph.Resolve(outer)
	if err != nil {
		return nil, err
	}
	chain, ok := graph.FindContainmentChain(a.Graph, outerSym, inner)
	if !ok {
		a.logger.Debug("no containment chain", "from", outer, "to", a.Config.Query.Root)
		return nil, nil
	}
	return a.symbolNames(chain), nil
}

func (a *App) symbolNames(syms []graph.Symbol) []string {
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		out = append(out, a.Table.MustName(s))
	}
	return out
}

// filterNames keeps names matching any configured pattern, sorted. With no
// patterns every name is kept.
func (a *App) filterNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if len(a.match) == 0 || matchesAny(a.match, name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func matchesAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
