package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bagrules_parsing_seconds",
		Help:    "Time spent parsing the rule set.",
		Buckets: prometheus.DefBuckets,
	})

	RulesParsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagrules_rules_parsed_total",
		Help: "Total number of container definitions parsed.",
	})

	ParseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bagrules_parse_errors_total",
		Help: "Total number of rule sets rejected, by error code.",
	}, []string{"code"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bagrules_graph_nodes_total",
		Help: "Total number of defined containers in the graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bagrules_graph_edges_total",
		Help: "Total number of containment edges in the graph.",
	})

	UndefinedContainers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bagrules_graph_undefined_total",
		Help: "Containers referenced as contents but never defined.",
	})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bagrules_query_seconds",
		Help:    "Time spent answering a graph query.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	WeightCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagrules_weight_cache_hits_total",
		Help: "Nested-weight lookups served from the cache.",
	})

	WeightCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagrules_weight_cache_misses_total",
		Help: "Nested-weight lookups that had to be computed.",
	})
)

// WriteTextfile dumps every registered metric to path in the Prometheus text
// exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
