package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Watch runs the pipeline once, then again after every burst of changes
// under cfg.Dirs has been quiet for debounce. Each run's outcome goes to
// onRun. It returns when ctx is done.
func Watch(ctx context.Context, cfg *config.Config, debounce time.Duration, onRun func(*Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range cfg.Dirs {
		if err := addTree(watcher, dir); err != nil {
			return err
		}
	}

	ignored := ownOutputs(cfg)
	onRun(Run(cfg))

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(watcher, ev.Name); err != nil {
						log.Warn(log.WatchModule, "cannot watch new directory", "path", ev.Name, "err", err)
					}
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Trace(log.WatchModule, "change", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(log.WatchModule, "watcher error", "err", err)
		case <-timer.C:
			log.Info(log.WatchModule, "inputs changed, re-running")
			onRun(Run(cfg))
		}
	}
}

// ownOutputs matches the files a run writes itself, so writing them inside a
// watched directory does not trigger another run.
func ownOutputs(cfg *config.Config) func(string) bool {
	var files []string
	for _, p := range []string{cfg.Out, cfg.Meta} {
		if p != "" {
			files = append(files, filepath.Clean(p))
		}
	}
	cache := ""
	if cfg.Cache != "" {
		cache = filepath.Clean(cfg.Cache) + string(filepath.Separator)
	}
	return func(name string) bool {
		name = filepath.Clean(name)
		for _, f := range files {
			if name == f {
				return true
			}
		}
		return cache != "" && (name+string(filepath.Separator) == cache || strings.HasPrefix(name, cache))
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
