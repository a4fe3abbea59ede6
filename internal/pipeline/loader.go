package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ppiankov/refdocs/internal/cache"
	"go.uber.org/zap"
)

// SourceLoader reads source files, keeping their text in a cache so that
// generators sharing a file read it once per run
type SourceLoader struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewSourceLoader creates a loader backed by the given cache
func NewSourceLoader(c cache.Cache, logger *zap.Logger) *SourceLoader {
	return &SourceLoader{cache: c, logger: logger}
}

// Load returns the text of the file at path. A missing file is not an
// error: found is false and the caller skips the step.
func (l *SourceLoader) Load(path string) (text string, found bool, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("resolve %s: %w", path, err)
	}

	key := cache.CacheKey(abs)
	if data, ok := l.cache.Get(key); ok {
		l.logger.Debug("source cache hit", zap.String("path", abs))
		return string(data), true, nil
	}

	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("source not found, skipping", zap.String("path", abs))
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read source: %w", err)
	}

	if err := l.cache.Set(key, data, 0); err != nil {
		l.logger.Warn("cache source", zap.String("path", abs), zap.Error(err))
	}
	l.logger.Debug("source loaded", zap.String("path", abs), zap.Int("bytes", len(data)))
	return string(data), true, nil
}
