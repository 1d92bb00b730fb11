// Package registry implements the item registry: create, list, get and update
// over the inventory document and the photo archive.
//
// Mutating operations hold one mutex across the whole load-mutate-save cycle.
// Without it two concurrent creates can read the same document, allocate the
// same id and overwrite each other's save (lost update). Reads skip the lock:
// the store's save is atomic, so a concurrent load always sees a complete
// document.
package registry

import (
	"context"
	"errors"
	"sync"

	"inventar/internal/model"
	"inventar/internal/photo"
	"inventar/internal/store"
)

var (
	// ErrNameRequired is returned by Create when the item name is missing.
	ErrNameRequired = errors.New("name required")

	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("item not found")

	// ErrNoPhoto is returned by Photo for an item without a photo reference.
	ErrNoPhoto = errors.New("item has no photo")
)

// Registry composes the record store and the photo archive.
type Registry struct {
	mu     sync.Mutex
	store  *store.Store
	photos *photo.Archive
}

// New returns a registry over the given store and archive.
func New(s *store.Store, a *photo.Archive) *Registry {
	return &Registry{store: s, photos: a}
}

// CreateParams carries the input of Create. PhotoPath points at the uploaded
// temp file; it is empty when no photo was supplied. PhotoExt is the original
// file extension, dot included.
type CreateParams struct {
	Name        string
	Description string
	PhotoPath   string
	PhotoExt    string
}

// UpdateParams carries the input of Update. Empty fields leave the stored
// value untouched; an explicit empty-string update is indistinguishable from
// "no change", matching the behavior existing clients rely on.
type UpdateParams struct {
	Name        string
	Description string
}

// Create registers a new item, archiving its photo if one was supplied, and
// persists the inventory. The returned item carries the assigned id and photo
// reference. When Create fails the temp photo file is left for the caller to
// discard.
func (r *Registry) Create(ctx context.Context, p CreateParams) (*model.Item, error) {
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	inv, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	item := model.Item{
		ID:          store.NextID(inv),
		Name:        p.Name,
		Description: p.Description,
	}

	if p.PhotoPath != "" {
		ref, err := r.photos.Store(item.ID, p.PhotoPath, p.PhotoExt)
		if err != nil {
			return nil, err
		}
		item.Photo = &ref
	}

	inv = append(inv, item)
	if err := r.store.Save(inv); err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns the full inventory in insertion order.
func (r *Registry) List(ctx context.Context) (model.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.Load()
}

// Get returns the item's metadata.
func (r *Registry) Get(ctx context.Context, id int64) (*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inv, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	item := inv.Find(id)
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Photo returns the raw photo bytes for the item.
func (r *Registry) Photo(ctx context.Context, id int64) ([]byte, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.HasPhoto() {
		return nil, ErrNoPhoto
	}
	return r.photos.Retrieve(*item.Photo)
}

// Update replaces the item's name and/or description and persists the
// inventory. Id and photo reference are never modified.
func (r *Registry) Update(ctx context.Context, id int64, p UpdateParams) (*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	inv, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	item := inv.Find(id)
	if item == nil {
		return nil, ErrNotFound
	}

	if p.Name != "" {
		item.Name = p.Name
	}
	if p.Description != "" {
		item.Description = p.Description
	}

	if err := r.store.Save(inv); err != nil {
		return nil, err
	}

	updated := *item
	return &updated, nil
}
