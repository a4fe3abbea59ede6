package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// Writer writes generated documents and compares them with what is on disk
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a document writer
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write replaces the file at path with content, creating parent directories
func (w *Writer) Write(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Debug("document written", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

// Diff returns a unified diff from the file at path to content, or "" when
// they are identical. A missing file diffs against empty text.
func (w *Writer) Diff(path, content string) (string, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if string(current) == content {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(content),
		FromFile: path + " (on disk)",
		ToFile:   path + " (generated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	if text == "" {
		// content differs only in ways SplitLines hides
		text = fmt.Sprintf("--- %s\n+++ %s\n", diff.FromFile, diff.ToFile)
	}
	return text, nil
}
