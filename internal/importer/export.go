package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/registry"
)

// ErrUnsafeName is returned by Export when a subdomain or topic id cannot be
// used as a single file name inside the output directory.
var ErrUnsafeName = errors.New("unsafe file name")

// Export writes reg to dir in the layout LoadCorpus reads: one JSON document
// per id under its subdomain, plus _category.json where an index exists.
// Every name is checked before anything is written. It returns the number of
// files written.
func Export(dir string, reg *registry.Registry) (int, error) {
	for _, sub := range reg.Subdomains() {
		if err := checkFileName("subdomain", sub); err != nil {
			return 0, err
		}
		for _, rec := range reg.List(registry.Filter{Subdomain: sub}) {
			if err := checkFileName("topic id", rec.ID); err != nil {
				return 0, err
			}
		}
	}

	written := 0
	for _, sub := range reg.Subdomains() {
		subDir := filepath.Join(dir, sub)
		if err := os.MkdirAll(subDir, 0o755); err != nil {
			return written, fmt.Errorf("creating %s: %w", subDir, err)
		}

		if idx, ok := reg.CategoryIndex(sub); ok {
			if err := writeJSON(filepath.Join(subDir, CategoryFileBase+".json"), idx); err != nil {
				return written, err
			}
			written++
		}

		for _, rec := range reg.List(registry.Filter{Subdomain: sub, InsertionOrder: true}) {
			if err := writeJSON(filepath.Join(subDir, rec.ID+".json"), rec); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// checkFileName rejects names that would leave their parent directory, nest
// into a subdirectory, or be skipped as reserved when read back.
func checkFileName(kind, name string) error {
	switch {
	case name == "", name == ".", name == "..":
	case strings.ContainsAny(name, `/\`):
	case !filepath.IsLocal(name):
	case isReserved(name):
	default:
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrUnsafeName, kind, name)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
