package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce groups the burst of events an editor save produces.
const defaultDebounce = 200 * time.Millisecond

// runWatch builds once, then rebuilds on source or vocabulary changes until interrupted.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.build.common, mergeBuildFlags(&flags.build, nil))
	if err != nil {
		return err
	}

	return watch(ctx, newBuilder(cfg, &flags.build, env), flags.debounce, nil)
}

// watch runs b once, then again after every debounced change to a watched
// file. Build failures are logged and watching continues. onBuild, if
// non-nil, receives every build outcome. Rebuilds run on the calling
// goroutine, one at a time. Returns nil when ctx is cancelled.
func watch(ctx context.Context, b *builder, debounce time.Duration, onBuild func(error)) error {
	targets, err := watchTargets(b.cfg.Source, b.cfg.Keywords)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	// Directories are watched so editors that save by rename keep working.
	for _, dir := range watchDirs(targets) {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	rebuild := func() {
		_, err := b.build(ctx)
		if err != nil && ctx.Err() == nil {
			b.logger.Error("build failed", slog.String("error", err.Error()))
		}
		if onBuild != nil {
			onBuild(err)
		}
	}

	rebuild()
	b.logger.Info("watching for changes", slog.Int("files", len(targets)))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("watch stopped")
			return nil

		case <-fire:
			fire = nil
			rebuild()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			b.logger.Debug("change detected", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("watcher error", slog.String("error", werr.Error()))
		}
	}
}

// watchTargets returns the absolute paths of the non-empty files.
func watchTargets(paths ...string) (map[string]bool, error) {
	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		targets[abs] = true
	}
	return targets, nil
}

// watchDirs returns the sorted, de-duplicated parent directories of targets.
func watchDirs(targets map[string]bool) []string {
	seen := make(map[string]bool, len(targets))
	var dirs []string
	for p := range targets {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}
