package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/tsgonest/oasts/internal/config"
	"github.com/tsgonest/oasts/internal/watcher"
)

// watch generates once, then again after every change to the input or
// config file, until ctx is cancelled. Failed passes are reported and the
// watch continues.
func (a *app) watch(ctx context.Context, cfg *config.Config) error {
	a.runPass(ctx, cfg)

	files := []string{cfg.Input}
	if used := config.FileUsed(a.opts.configPath, ""); used != "" {
		files = append(files, used)
	}

	changes := make(chan []watcher.Event, 1)
	w := watcher.New(files, watcher.DefaultDebounce, func(events []watcher.Event) {
		select {
		case changes <- events:
		default:
			// A regeneration is already queued and will see this change.
		}
	})

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	a.status(color.FgCyan, "watching %s for changes (Ctrl+C to stop)\n", strings.Join(files, ", "))

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case events := <-changes:
			for _, e := range events {
				a.log.Info("change detected", "path", e.Path, "op", e.Op)
			}
			next, err := a.loadConfig()
			if err != nil {
				a.printError(fmt.Errorf("reloading config: %w", err))
				continue
			}
			cfg = next
			a.runPass(ctx, cfg)
		}
	}
}

func (a *app) runPass(ctx context.Context, cfg *config.Config) {
	if err := a.once(ctx, cfg); err != nil && !errors.Is(err, errDiagnostics) && ctx.Err() == nil {
		a.printError(err)
	}
}

func (a *app) printError(err error) {
	color.New(color.FgRed).Fprintf(a.stderr, "error: %v\n", err)
}
