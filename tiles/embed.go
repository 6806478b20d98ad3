package tiles

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCatalog is the catalog file shipped with the binary.
const DefaultCatalog = "catalog.yaml"

//go:embed *.yaml
var CatalogFS embed.FS

// Dir is the on-disk directory checked before the embedded files, so an
// edited catalog takes effect without a rebuild.
var Dir = "tiles"

// Load returns the named catalog file, preferring the copy under Dir.
func Load(name string) ([]byte, error) {
	clean := cleanCatalogPath(name)
	if data, err := os.ReadFile(diskCatalogPath(clean)); err == nil {
		return data, nil
	}
	return CatalogFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanCatalogPath(name)
	info, err := os.Stat(diskCatalogPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanCatalogPath(path string) string {
	if path == "" {
		return DefaultCatalog
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func diskCatalogPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
