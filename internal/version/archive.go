package version

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// archivedSuffixes are the top-level file types copied into an archive
var archivedSuffixes = []string{".md", ".txt", ".yml", ".yaml"}

// Archiver snapshots a documentation tree into <archiveDir>/v<major.minor>
type Archiver struct {
	docsDir    string
	archiveDir string
	exclude    []glob.Glob
	logger     *zap.Logger
}

// NewArchiver creates an archiver. Exclusion patterns are matched against
// top-level entry names.
func NewArchiver(docsDir, archiveDir string, exclude []string, logger *zap.Logger) (*Archiver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Archiver{docsDir: docsDir, archiveDir: archiveDir, logger: logger}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		a.exclude = append(a.exclude, g)
	}
	return a, nil
}

// ArchiveResult describes a completed archive
type ArchiveResult struct {
	Version string // major.minor
	Path    string
	Items   int // top-level files and directories copied
}

// Archive copies the current documentation into the archive for version.
// It returns ErrArchiveExists, without touching anything, when that archive
// is already present.
func (a *Archiver) Archive(version string) (*ArchiveResult, error) {
	major, err := MajorMinor(version)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(a.archiveDir, "v"+major)
	if _, err := os.Stat(target); err == nil {
		return nil, fmt.Errorf("%w: v%s", ErrArchiveExists, major)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	entries, err := os.ReadDir(a.docsDir)
	if err != nil {
		return nil, fmt.Errorf("read docs dir: %w", err)
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	res := &ArchiveResult{Version: major, Path: target}
	for _, entry := range entries {
		name := entry.Name()
		if a.excluded(name) {
			continue
		}
		src := filepath.Join(a.docsDir, name)
		dst := filepath.Join(target, name)

		switch {
		case entry.Type().IsRegular() && hasArchivedSuffix(name):
			if err := copyFile(src, dst); err != nil {
				return nil, err
			}
		case entry.IsDir() && (name == "docs" || strings.HasPrefix(name, "_")):
			if err := copyTree(src, dst); err != nil {
				return nil, err
			}
		default:
			continue
		}
		res.Items++
		a.logger.Debug("archived", zap.String("entry", name))
	}
	return res, nil
}

func (a *Archiver) excluded(name string) bool {
	for _, g := range a.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// List returns the archived versions under archiveDir, newest first. A
// missing archive directory yields an empty list.
func List(archiveDir string) ([]string, error) {
	entries, err := os.ReadDir(archiveDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "v") {
			versions = append(versions, strings.TrimPrefix(entry.Name(), "v"))
		}
	}
	SortDescending(versions)
	return versions, nil
}

func hasArchivedSuffix(name string) bool {
	ext := filepath.Ext(name)
	for _, s := range archivedSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
