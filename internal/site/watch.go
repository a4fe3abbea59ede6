package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before a rebuild
const DefaultDebounce = 300 * time.Millisecond

var watchedExtensions = map[string]bool{".md": true, ".css": true}

// Watch rebuilds the site whenever a Markdown document or the stylesheet
// changes, until ctx is done. Bursts of events inside the debounce window
// produce a single rebuild. Rebuild failures are logged and watching goes on.
func (b *Builder) Watch(ctx context.Context, debounce time.Duration, onBuild func(*BuildResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := []string{
		b.config.DocsPath("."),
		filepath.Dir(b.config.DocsPath(b.config.Site.Stylesheet)),
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			b.logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	if len(watcher.WatchList()) == 0 {
		return fmt.Errorf("nothing to watch")
	}

	return watchLoop(ctx, watcher, debounce, b.outputDirs(), b.logger, func() {
		res, err := b.Build(ctx)
		if err != nil {
			if ctx.Err() == nil {
				b.logger.Warn("rebuild failed", zap.Error(err))
			}
			return
		}
		if onBuild != nil {
			onBuild(res)
		}
	})
}

// outputDirs hold files the builder writes, whose events must not retrigger it
func (b *Builder) outputDirs() map[string]bool {
	out := make(map[string]bool)
	dst, err := filepath.Abs(b.BuildDir())
	if err != nil {
		return out
	}
	src, err := filepath.Abs(b.config.DocsPath("."))
	if err == nil && dst != src {
		out[dst] = true
	}
	return out
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, ignoreDirs map[string]bool, logger *zap.Logger, rebuild func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, ignoreDirs) {
				continue
			}
			logger.Debug("change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case <-timer.C:
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func relevant(event fsnotify.Event, ignoreDirs map[string]bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if !watchedExtensions[filepath.Ext(event.Name)] {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return !ignoreDirs[filepath.Dir(abs)]
}
