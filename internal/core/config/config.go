package config

import "time"

const DefaultRoot = "shiny gold"

type Config struct {
	Version int     `toml:"version"`
	Input   Input   `toml:"input"`
	Query   Query   `toml:"query"`
	Output  Output  `toml:"output"`
	Metrics Metrics `toml:"metrics"`
	Watch   Watch   `toml:"watch"`
	Tracing Tracing `toml:"tracing"`
}

type Input struct {
	// Paths are rule files or directories; "-" reads standard input.
	Paths []string `toml:"paths"`
	// Include filters directory entries by base name (gobwas/glob syntax).
	Include []string `toml:"include"`
}

type Query struct {
	Root      string `toml:"root"`
	Strict    bool   `toml:"strict"`
	MaxDepth  int    `toml:"max_depth"`
	CacheSize int    `toml:"cache_size"`
	// Trace names an outer container whose shortest chain down to Root is
	// reported.
	Trace string `toml:"trace"`
}

type Output struct {
	DOT     string `toml:"dot"`
	TSV     string `toml:"tsv"`
	Mermaid string `toml:"mermaid"`
	// MetricsTSV receives per-container fan-in, fan-out and depth.
	MetricsTSV string `toml:"metrics_tsv"`
	List    bool   `toml:"list"`
	// Match restricts listed ancestor names to those matching any pattern.
	Match []string `toml:"match"`
}

type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Tracing enables OTLP span export when OTLPEndpoint is set.
type Tracing struct {
	OTLPEndpoint string `toml:"otlp_endpoint"`
	Insecure     bool   `toml:"insecure"`
}

type Watch struct {
	// Debounce is a Go duration string; changes within it re-run once.
	Debounce string `toml:"debounce"`
	// MinInterval bounds how often reloads may run back to back.
	MinInterval string `toml:"min_interval"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// DebounceDuration returns the parsed watch debounce.
func (c *Config) DebounceDuration() time.Duration {
	return parseDurationOr(c.Watch.Debounce, defaultDebounce)
}

// MinReloadInterval returns the parsed watch min_interval.
func (c *Config) MinReloadInterval() time.Duration {
	return parseDurationOr(c.Watch.MinInterval, defaultMinInterval)
}

func parseDurationOr(s, fallback string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
