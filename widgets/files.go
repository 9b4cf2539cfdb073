// Package widgets backs the personal-assistant CRUD widgets (tasks,
// calendar events, notes, note folders) with one flat JSON array file per
// widget. Each mutation reads the array, rewrites it whole, and assigns
// sequential integer ids.
package widgets

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound reports an unknown widget item id.
var ErrNotFound = errors.New("not found")

// readList loads a JSON array file, creating it (as "[]") when missing.
// Malformed content is treated as an empty list.
func readList[T any](path string) ([]T, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
				return nil, err
			}
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeList rewrites the whole array file.
func writeList[T any](path string, items []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// nextID continues the sequence from the last element, matching the
// original flat-file stores: ids restart after deleting the tail.
func nextID(lastID, count int) int {
	if count == 0 {
		return 1
	}
	return lastID + 1
}
