// Package store persists the inventory as a single JSON document on disk.
//
// The document is the source of truth: every operation loads it fresh and
// every mutation rewrites it in full. Save replaces the document atomically
// (temp file + rename), so a reader never observes a half-written file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"inventar/internal/model"
)

// FileName is the document name inside the data directory.
const FileName = "inventory.json"

// ErrCorrupt marks a document that exists but cannot be parsed.
var ErrCorrupt = errors.New("inventory document is corrupt")

// Store reads and writes the inventory document.
type Store struct {
	path string
}

// New returns a store backed by <dir>/inventory.json.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Init creates the document as an empty inventory if it does not exist yet.
// An existing document is left untouched.
func (s *Store) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking inventory document: %w", err)
	}
	return s.Save(model.Inventory{})
}

// Load parses the document into the ordered item list.
func (s *Store) Load() (model.Inventory, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory document: %w", err)
	}

	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return inv, nil
}

// Save serializes the full inventory and atomically replaces the document.
// The temp file lives in the same directory so the rename stays on one
// filesystem.
func (s *Store) Save(inv model.Inventory) error {
	if inv == nil {
		inv = model.Inventory{}
	}

	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing inventory document: %w", err)
	}
	return nil
}

// NextID returns the id for the next item: 1 for an empty inventory,
// otherwise one greater than the largest assigned id. Callers must invoke it
// inside the same critical section as the save that persists the new item.
func NextID(inv model.Inventory) int64 {
	var max int64
	for _, item := range inv {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}
