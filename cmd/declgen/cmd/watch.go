package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/declgen/declgen/errors"
	"github.com/declgen/declgen/logger"
	"github.com/declgen/declgen/pipeline"
)

// debouncePeriod coalesces the bursts of write events editors produce into a
// single regeneration.
const debouncePeriod = 500 * time.Millisecond

// watch regenerates whenever an input schema file changes, until interrupted.
// Database sources are not watchable; only file inputs are registered.
func watch(ctx context.Context, opts pipeline.Options, outDir string) error {
	if len(opts.Inputs) == 0 {
		return errors.New("--watch requires schema file inputs")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer watcher.Close()

	for _, path := range opts.Inputs {
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Logger.Infow("watching for changes", "files", len(opts.Inputs))

	var debounce *time.Timer
	regen := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Editors often replace the file; re-register the path so
			// subsequent writes keep arriving.
			_ = watcher.Add(event.Name)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debouncePeriod, func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("watch error", "error", err)
		case <-regen:
			if err := pipeline.Run(ctx, opts, outDir); err != nil {
				// Keep watching; a half-saved schema should not kill
				// the session.
				logger.Logger.Errorw("regeneration failed", "error", err)
			}
		}
	}
}
