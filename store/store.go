// Package store persists the myBlog document as a single unit: every load
// reads the whole document and every save rewrites it. Concurrent writers
// are not serialized against each other; the design accepts last-write-wins
// at the granularity of the full document.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"alfredhub/types"
)

// Backend is the storage port for the myBlog document.
type Backend interface {
	// Load returns the persisted document. Missing or corrupt data yields
	// an empty document, never an error.
	Load() (types.Database, error)
	// Save serializes the full document.
	Save(db types.Database) error
}

// FileBackend stores the document as a pretty-printed JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file-backed store at the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) ensureDir() error {
	return os.MkdirAll(filepath.Dir(f.path), 0o755)
}

// Load reads the document from disk. A missing file or malformed JSON is
// treated as an empty store.
func (f *FileBackend) Load() (types.Database, error) {
	if err := f.ensureDir(); err != nil {
		return types.Database{}, err
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return emptyDatabase(), nil
	}

	var db types.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return emptyDatabase(), nil
	}

	// Safety defaults for hand-edited files
	if db.Genres == nil {
		db.Genres = []types.Genre{}
	}
	if db.Articles == nil {
		db.Articles = []types.Article{}
	}
	return db, nil
}

// Save rewrites the full document.
func (f *FileBackend) Save(db types.Database) error {
	if err := f.ensureDir(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}

func emptyDatabase() types.Database {
	return types.Database{Genres: []types.Genre{}, Articles: []types.Article{}}
}
