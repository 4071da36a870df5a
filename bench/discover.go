package bench

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover returns the regular *.txt files directly inside dir, sorted.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)

	return files, nil
}

// Category maps a directory name such as "MDG-b" to its family "MDG".
func Category(subdir string) string {
	name, _, _ := strings.Cut(subdir, "-")

	return name
}
