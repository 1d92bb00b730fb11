package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inventar/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestInitCreatesEmptyDocument(t *testing.T) {
	s := newTestStore(t)

	inv, err := s.Load()
	if err != nil {
		t.Fatalf("Load after Init: %v", err)
	}
	if len(inv) != 0 {
		t.Errorf("expected empty inventory, got %d items", len(inv))
	}
}

func TestInitLeavesExistingDocumentAlone(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(model.Inventory{{ID: 1, Name: "Drill"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	inv, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(inv) != 1 {
		t.Errorf("expected Init to keep existing items, got %d", len(inv))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	ref := "cache/photo_2.png"
	want := model.Inventory{
		{ID: 1, Name: "Drill", Description: "Cordless"},
		{ID: 2, Name: "Saw", Photo: &ref},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Name != "Drill" || got[0].Description != "Cordless" {
		t.Errorf("first item mismatch: %+v", got[0])
	}
	if got[1].Photo == nil || *got[1].Photo != ref {
		t.Errorf("expected photo reference %q, got %v", ref, got[1].Photo)
	}
}

func TestSaveUsesCompatibleFieldNames(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(model.Inventory{{ID: 1, Name: "Drill"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	for _, field := range []string{`"id"`, `"inventory_name"`, `"description"`, `"photo"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("document missing field %s:\n%s", field, data)
		}
	}
	if !strings.Contains(string(data), `"photo": null`) {
		t.Errorf("expected photo-less item to persist null photo:\n%s", data)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Save(model.Inventory{{ID: 1, Name: "Drill"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != FileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only %s in data dir, got %v", FileName, names)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt document: %v", err)
	}

	_, err := New(dir).Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := New(t.TempDir()).Load()
	if err == nil {
		t.Error("expected error loading missing document")
	}
	if errors.Is(err, ErrCorrupt) {
		t.Errorf("missing document must not be reported as corrupt: %v", err)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Errorf("NextID(empty) = %d, want 1", got)
	}

	inv := model.Inventory{{ID: 1}, {ID: 7}, {ID: 3}}
	if got := NextID(inv); got != 8 {
		t.Errorf("NextID = %d, want 8 (one past the max)", got)
	}
}
