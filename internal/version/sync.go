package version

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// SyncedFiles are the documents whose version markers Sync rewrites
var SyncedFiles = []string{"INDEX.md", "README.md"}

type marker struct {
	pattern     *regexp.Regexp
	replacement string
}

func markers(product, version string) []marker {
	return []marker{
		{regexp.MustCompile(`\*\*Version:\*\*\s*[0-9.]+`), "**Version:** " + version},
		{regexp.MustCompile(`\*\*Current Version:\*\*\s*[0-9.]+`), "**Current Version:** " + version},
		{
			regexp.MustCompile(`This documentation corresponds to ` + regexp.QuoteMeta(product) + ` version\s+[0-9.]+`),
			"This documentation corresponds to " + product + " version " + version,
		},
	}
}

// Sync rewrites the version markers in the synced files under docsDir and
// returns the names of the files that changed. Missing files are skipped.
func Sync(docsDir, product, version string) ([]string, error) {
	var updated []string
	for _, name := range SyncedFiles {
		changed, err := syncFile(filepath.Join(docsDir, name), markers(product, version))
		if err != nil {
			return updated, err
		}
		if changed {
			updated = append(updated, name)
		}
	}
	return updated, nil
}

func syncFile(path string, ms []marker) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	content := string(data)
	for _, m := range ms {
		content = m.pattern.ReplaceAllLiteralString(content, m.replacement)
	}
	if content == string(data) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
