package config

import (
	"bagrules/internal/core/errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultMaxDepth    = 10000
	defaultCacheSize   = 1024
	defaultInput       = "input/day7.txt"
	defaultDebounce    = "250ms"
	defaultMinInterval = "1s"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "config file not found"), errors.CtxPath, path)
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to read config"), errors.CtxPath, path)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "invalid config"), errors.CtxPath, path)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if len(cfg.Input.Paths) == 0 {
		cfg.Input.Paths = []string{defaultInput}
	}
	if len(cfg.Input.Include) == 0 {
		cfg.Input.Include = []string{"*.txt"}
	}

	cfg.Query.Root = strings.TrimSpace(cfg.Query.Root)
	if cfg.Query.Root == "" {
		cfg.Query.Root = DefaultRoot
	}
	if cfg.Query.MaxDepth == 0 {
		cfg.Query.MaxDepth = defaultMaxDepth
	}
	if cfg.Query.CacheSize == 0 {
		cfg.Query.CacheSize = defaultCacheSize
	}
	cfg.Query.Trace = strings.TrimSpace(cfg.Query.Trace)

	if strings.TrimSpace(cfg.Watch.Debounce) == "" {
		cfg.Watch.Debounce = defaultDebounce
	}
	if strings.TrimSpace(cfg.Watch.MinInterval) == "" {
		cfg.Watch.MinInterval = defaultMinInterval
	}
}
