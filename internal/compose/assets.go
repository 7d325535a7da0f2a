package compose

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListStockAssets enumerates the usable stock clips under dir, sorted by
// name for deterministic shot-to-asset mapping. A missing or empty
// directory yields an empty list, never an error: stock availability is
// independent of whether a render should be attempted.
func ListStockAssets(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".mp4", ".mov":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(out)
	return out
}
