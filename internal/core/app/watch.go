package app

import (
	"bagrules/internal/core/errors"
	"bagrules/internal/core/watcher"
	"context"

	"golang.org/x/time/rate"
)

// Reload re-reads every input and answers both queries against the new graph.
// A rule set that fails to parse leaves the previous graph in place.
func (a *App) Reload(ctx context.Context) (Report, error) {
	if err := a.Load(ctx); err != nil {
		return Report{}, err
	}
	return a.Run(ctx)
}

// Watch blocks until ctx is done, calling onRun with a fresh report each time
// the watched rule files change. Standard input cannot be watched.
func (a *App) Watch(ctx context.Context, onRun func(Report, error)) error {
	var paths []string
	for _, p := range a.Config.Input.Paths {
		if p != stdinPath {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return errors.New(errors.CodeValidationError, "watch mode needs at least one input file or directory")
	}

	limiter := rate.NewLimiter(rate.Every(a.Config.MinReloadInterval()), 1)
	w, err := watcher.NewWatcher(a.Config.DebounceDuration(), a.Config.Input.Include, func(changed []string) {
		a.logger.Info("rules changed", "files", len(changed))
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		report, err := a.Reload(ctx)
		onRun(report, err)
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to create watcher")
	}
	defer w.Close()

	if err := w.Watch(paths); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to watch inputs")
	}
	a.logger.Info("watching rule files", "paths", paths, "debounce", a.Config.DebounceDuration())

	<-ctx.Done()
	return nil
}
