package terminology

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Catalog dataset filenames inside the catalog directory.
const (
	CID10File = "cid10.json"
	DCBFile   = "dcb.json"
	TUSSFile  = "tuss.json"
)

// FileLoader reads the three catalog datasets from JSON files in a
// directory. Changing the datasets requires no code change; the store
// re-derives its indexes from whatever the files contain.
type FileLoader struct {
	dir string
}

// NewFileLoader creates a loader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir}
}

// Load reads and decodes all three catalog files. A missing or
// malformed file is a startup error.
func (l *FileLoader) Load(_ context.Context) (*Catalogs, error) {
	var catalogs Catalogs

	if err := l.readJSON(CID10File, &catalogs.Diagnoses); err != nil {
		return nil, err
	}
	if err := l.readJSON(DCBFile, &catalogs.Drugs); err != nil {
		return nil, err
	}
	if err := l.readJSON(TUSSFile, &catalogs.Procedures); err != nil {
		return nil, err
	}

	return &catalogs, nil
}

func (l *FileLoader) readJSON(name string, out interface{}) error {
	path := filepath.Join(l.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return nil
}
