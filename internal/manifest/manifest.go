// Package manifest reads the externally generated WPT manifest: a
// directory-shaped catalogue whose leaves list the concrete runnable
// variations of one logical test.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Variation is one concrete runnable file sharing a leaf's logical key.
type Variation struct {
	Path    string
	Options map[string]any
}

// Entry is one manifest node: either a folder of child entries or an
// ordered variation list.
type Entry struct {
	Folder     map[string]*Entry // non-nil for folders
	Variations []Variation       // set for variation-list leaves
}

// IsFolder reports whether the entry groups child entries.
func (e *Entry) IsFolder() bool { return e.Folder != nil }

// Keys returns a folder's child keys in sorted order, for deterministic
// traversal.
func (e *Entry) Keys() []string {
	keys := make([]string, 0, len(e.Folder))
	for k := range e.Folder {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes either shape. A variation list's first slot is
// file metadata (the source hash) and is discarded.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var folder map[string]*Entry
		if err := json.Unmarshal(data, &folder); err != nil {
			return fmt.Errorf("manifest folder: %w", err)
		}
		e.Folder = folder
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("manifest entry must be an object or array: %w", err)
	}
	if len(items) == 0 {
		return nil
	}
	for _, item := range items[1:] {
		var slot []json.RawMessage
		if err := json.Unmarshal(item, &slot); err != nil {
			return fmt.Errorf("manifest variation: %w", err)
		}
		var v Variation
		if len(slot) > 0 {
			// null paths mark variations that are not directly runnable
			if err := json.Unmarshal(slot[0], &v.Path); err != nil {
				v.Path = ""
			}
		}
		if len(slot) > 1 {
			if err := json.Unmarshal(slot[1], &v.Options); err != nil {
				return fmt.Errorf("variation options: %w", err)
			}
		}
		if v.Options == nil {
			v.Options = map[string]any{}
		}
		e.Variations = append(e.Variations, v)
	}
	return nil
}

// Load reads and parses the manifest file.
func Load(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var root Entry
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if !root.IsFolder() {
		return nil, fmt.Errorf("manifest root must be a folder")
	}
	return &root, nil
}
