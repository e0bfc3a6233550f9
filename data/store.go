package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrCorrupt means the persisted document could not be parsed.
	// Callers must surface it rather than fall back to an empty
	// document, or recorded attendance would be silently discarded.
	ErrCorrupt = errors.New("attendance data corrupt")

	// ErrIO means the document could not be read from or written to
	// disk. The in-memory mutation is lost; nothing was committed.
	ErrIO = errors.New("attendance storage failure")
)

// FileStore persists the whole attendance document as one JSON file.
// Load and Save always move the entire document; there is no partial
// update.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted document, or an empty one if the file
// does not exist yet.
func (s *FileStore) Load() (Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save atomically replaces the persisted document: it writes a temp
// file next to the target and renames it over, so a reader never
// observes a half-written document.
func (s *FileStore) Save(doc Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", ErrIO, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrIO, s.path, err)
	}
	return nil
}
