package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: BAGRULES_[SECTION]_[KEY] (e.g., BAGRULES_QUERY_ROOT).
func ApplyEnvOverrides(cfg *Config) {
	// Input
	setEnvList(&cfg.Input.Paths, "BAGRULES_INPUT_PATHS")

	// Query
	setEnvString(&cfg.Query.Root, "BAGRULES_QUERY_ROOT")
	setEnvBool(&cfg.Query.Strict, "BAGRULES_QUERY_STRICT")
	setEnvInt(&cfg.Query.MaxDepth, "BAGRULES_QUERY_MAX_DEPTH")
	setEnvInt(&cfg.Query.CacheSize, "BAGRULES_QUERY_CACHE_SIZE")

	// Metrics
	setEnvString(&cfg.Metrics.Textfile, "BAGRULES_METRICS_TEXTFILE")

	// Tracing
	setEnvString(&cfg.Tracing.OTLPEndpoint, "BAGRULES_TRACING_OTLP_ENDPOINT")
	setEnvBool(&cfg.Tracing.Insecure, "BAGRULES_TRACING_INSECURE")

	// Watch
	setEnvString(&cfg.Watch.Debounce, "BAGRULES_WATCH_DEBOUNCE")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

// setEnvList splits a comma-separated value.
func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		slog.Debug("applying env override", "key", key, "value", val)
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*target = out
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}
