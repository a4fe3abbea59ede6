// Package version reads the documentation version and maintains archived
// snapshots of earlier versions.
package version

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrNoVersion is returned when the VERSION file is missing or empty
	ErrNoVersion = errors.New("no version found in VERSION file")
	// ErrInvalidVersion is returned when a version has no major.minor prefix
	ErrInvalidVersion = errors.New("invalid version format")
	// ErrArchiveExists is returned when the archive for a major.minor already exists
	ErrArchiveExists = errors.New("archive already exists")
)

var majorMinor = regexp.MustCompile(`^(\d+\.\d+)`)

// Read returns the trimmed contents of the VERSION file at path
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoVersion
	}
	if err != nil {
		return "", fmt.Errorf("read version: %w", err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", ErrNoVersion
	}
	return v, nil
}

// MajorMinor returns the leading "X.Y" of a version, e.g. "1.2" for "1.2.3"
func MajorMinor(v string) (string, error) {
	m := majorMinor.FindStringSubmatch(v)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return m[1], nil
}

// Less orders dotted numeric versions; non-numeric parts compare as text
func Less(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, errA := strconv.Atoi(pa[i])
		nb, errB := strconv.Atoi(pb[i])
		switch {
		case errA == nil && errB == nil:
			if na != nb {
				return na < nb
			}
		case pa[i] != pb[i]:
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

// SortDescending sorts versions newest first
func SortDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return Less(versions[j], versions[i])
	})
}
