package evdev

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultDir = "/dev/input/by-id"

type Class string

const (
	Keyboard Class = "kbd"
	Mouse    Class = "mouse"
)

// Scan resolves the event devices of class listed in dir, by-id symlinks are followed.
func Scan(dir string, class Class) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(name, "event") || !strings.Contains(name, string(class)) {
			continue
		}

		full := filepath.Join(dir, name)
		target, err := os.Readlink(full)
		if err != nil {
			target = full
		} else if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		target = filepath.Clean(target)

		if seen[target] {
			continue
		}
		seen[target] = true
		paths = append(paths, target)
	}

	sort.Strings(paths)

	return paths, nil
}
