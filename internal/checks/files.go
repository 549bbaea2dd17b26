package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TopLevelSources lists the regular files directly under dir whose names
// match pattern, sorted lexicographically. When nothing matches, the literal
// pattern is returned so the delegated tool reports the absence itself,
// mirroring sh glob behavior.
func TopLevelSources(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list sources in %s: %w", dir, err)
	}
	matches := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// sh globs never match hidden files.
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) == 0 {
		return []string{pattern}, nil
	}
	sort.Strings(matches)
	return matches, nil
}
