package atlas

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExtensions lists the file extensions considered decodable tile
// sources when scanning a directory. Matching is case-insensitive.
var sourceExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Identifier derives the metadata key for a source file: the base name
// without directory or extension.
func Identifier(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DiscoverSources scans a directory for tile images and returns their paths
// in lexicographic order, so repeated runs over the same directory pack in
// the same order. Subdirectories are not descended into.
func DiscoverSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading texture directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if sourceExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// nameTable hands out unique metadata keys for a packing run. The first
// occurrence of a derived name keeps it; later occurrences get a numeric
// suffix so no placement is silently lost.
type nameTable struct {
	used map[string]bool
}

func newNameTable() *nameTable {
	return &nameTable{used: make(map[string]bool)}
}

// claim returns a unique variant of name and whether it had to be renamed.
func (t *nameTable) claim(name string) (string, bool) {
	if !t.used[name] {
		t.used[name] = true
		return name, false
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !t.used[candidate] {
			t.used[candidate] = true
			return candidate, true
		}
	}
}
