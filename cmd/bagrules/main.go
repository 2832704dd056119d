// # cmd/bagrules/main.go
package main

import (
	"bagrules/internal/core/app"
	"bagrules/internal/core/config"
	"bagrules/internal/core/errors"
	"bagrules/internal/shared/observability"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"
)

const (
	VERSION           = "1.0.0"
	defaultConfigPath = "./bagrules.toml"
)

type options struct {
	configPath string
	input      string
	root       string
	trace      string
	match      string
	dot        string
	tsv        string
	mermaid    string
	metrics    string
	strict     bool
	list       bool
	plain      bool
	watch      bool
	verbose    bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bagrules", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.input, "input", "", "Comma-separated rule files or directories (\"-\" for stdin)")
	fs.StringVar(&opts.root, "root", "", "Container to query (default \"shiny gold\")")
	fs.StringVar(&opts.trace, "trace", "", "Report the shortest containment chain from this container down to the root")
	fs.StringVar(&opts.match, "match", "", "Comma-separated glob patterns filtering --list output")
	fs.StringVar(&opts.dot, "dot", "", "Write a Graphviz DOT graph to this path")
	fs.StringVar(&opts.tsv, "tsv", "", "Write the edge list as TSV to this path")
	fs.StringVar(&opts.mermaid, "mermaid", "", "Write a Mermaid flowchart to this path")
	fs.StringVar(&opts.metrics, "metrics", "", "Write Prometheus metrics to this textfile")
	fs.BoolVar(&opts.strict, "strict", false, "Reject undefined containers and cycles")
	fs.BoolVar(&opts.list, "list", false, "List the containers that can hold the root")
	fs.BoolVar(&opts.plain, "plain", false, "Print bare answers without styling")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run whenever the rule files change")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "bagrules v%s\n", VERSION)
		return 0
	}

	logLevel := slog.LevelInfo
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	config.ApplyEnvOverrides(cfg)
	applyFlags(fs, &opts, cfg)
	if fs.NArg() > 0 {
		cfg.Input.Paths = fs.Args()
	}

	if endpoint := cfg.Tracing.OTLPEndpoint; endpoint != "" {
		shutdown, err := observability.InitTracing(ctx, endpoint, cfg.Tracing.Insecure, VERSION)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			return 1
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		}()
		slog.Debug("tracing enabled", "endpoint", endpoint)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	a.Stdin = stdin

	report, err := a.Run(ctx)
	if err != nil {
		slog.Error("run failed", "error", err, "code", errors.CodeOf(err))
		return 1
	}

	show := printSummary
	if opts.plain {
		show = printPlain
	}
	show(stdout, report)

	if !opts.watch {
		return 0
	}
	err = a.Watch(ctx, func(r app.Report, err error) {
		if err != nil {
			slog.Error("reload failed", "error", err, "code", errors.CodeOf(err))
			return
		}
		show(stdout, r)
	})
	if err != nil {
		slog.Error("watch failed", "error", err)
		return 1
	}
	return 0
}

// loadConfig falls back to defaults only when the default config path is
// absent; an explicitly named file must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == defaultConfigPath && errors.IsCode(err, errors.CodeNotFound) {
		slog.Debug("no config file, using defaults", "path", path)
		return config.DefaultConfig(), nil
	}
	return nil, err
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Paths = splitList(opts.input)
		case "root":
			cfg.Query.Root = strings.TrimSpace(opts.root)
		case "trace":
			cfg.Query.Trace = strings.TrimSpace(opts.trace)
		case "strict":
			cfg.Query.Strict = opts.strict
		case "list":
			cfg.Output.List = opts.list
		case "match":
			cfg.Output.Match = splitList(opts.match)
			cfg.Output.List = true
		case "dot":
			cfg.Output.DOT = opts.dot
		case "tsv":
			cfg.Output.TSV = opts.tsv
		case "mermaid":
			cfg.Output.Mermaid = opts.mermaid
		case "metrics":
			cfg.Metrics.Textfile = opts.metrics
		}
	})
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
