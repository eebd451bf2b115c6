// Package template reads seed packing lists from disk.
//
// A template is a read-only starting point for a session. Ids in the file
// are ignored; the store issues its own when the entries are added.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prime-mcgowan/packing-list/internal/log"
	"github.com/prime-mcgowan/packing-list/internal/model"
	"github.com/prime-mcgowan/packing-list/internal/store"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

// Entry is one line of a template. Quantity defaults to 1 when omitted.
type Entry struct {
	Description string `json:"description" yaml:"description"`
	Quantity    int    `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Packed      bool   `json:"packed,omitempty" yaml:"packed,omitempty"`
}

// Load reads entries from path. The format follows the extension:
// .json, or .yaml/.yml. A missing file is an error; callers that treat the
// template as optional check for an empty path first.
func Load(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("template %s: %w", path, err)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		return nil, fmt.Errorf("template %s: unsupported extension %q", path, ext)
	}
	log.Debug(log.CatStore, "template loaded", "path", path, "entries", len(entries))
	return entries, nil
}

// Seed adds entries to s through the normal Add path, then toggles the ones
// marked packed. The first invalid entry aborts with its 1-based position.
func Seed(s *store.Store, entries []Entry) error {
	for i, e := range entries {
		qty := e.Quantity
		if qty == 0 {
			qty = 1
		}
		items, err := s.Add(e.Description, qty)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		if e.Packed {
			s.Toggle(items[len(items)-1].ID)
		}
	}
	return nil
}

// Export is the JSON shape written by `show --json`.
type Export struct {
	Sort  view.SortKey `json:"sort"`
	Items []model.Item `json:"items"`
	Stats view.Stats   `json:"stats"`
}

// Encode writes the snapshot as indented JSON.
func Encode(w io.Writer, key view.SortKey, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export{Sort: key, Items: items, Stats: view.ComputeStats(items)}); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return nil
}
