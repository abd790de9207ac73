package solution

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ScanManifests walks dir and returns the absolute paths of every file whose
// name ends with one of names, shortest path first.
func ScanManifests(dir string, names []string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		for _, n := range names {
			if strings.HasSuffix(path, n) {
				abs, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				found = append(found, abs)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(found, func(a, b string) int { return len(a) - len(b) })
	return found, nil
}

// projectFilesIn lists the project files directly inside dir.
func projectFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && IsProjectFile(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// matchManifest returns the first manifest whose path contains the project's
// root directory, or the project name wrapped in separators.
func matchManifest(manifests []string, rootDir, name string) string {
	sep := string(filepath.Separator)
	rootPattern := rootDir + sep
	namePattern := sep + name + sep
	for _, m := range manifests {
		if strings.Contains(m, rootPattern) || strings.Contains(m, namePattern) {
			return m
		}
	}
	return ""
}
