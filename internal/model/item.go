package model

// Item is a single registered inventory entry. The JSON field names match the
// persisted document and the wire format consumed by existing clients.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"inventory_name"`
	Description string  `json:"description"`
	Photo       *string `json:"photo"`
}

// HasPhoto reports whether a photo reference is attached to the item.
func (i *Item) HasPhoto() bool {
	return i.Photo != nil && *i.Photo != ""
}

// Inventory is the full ordered collection of items, persisted as one document.
// Order is insertion order; ids are pairwise distinct.
type Inventory []Item

// Find returns a pointer to the item with the given id, or nil.
// The pointer aliases the slice element, so callers may mutate in place.
func (inv Inventory) Find(id int64) *Item {
	for idx := range inv {
		if inv[idx].ID == id {
			return &inv[idx]
		}
	}
	return nil
}
