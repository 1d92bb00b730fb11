// Package photo stores item photos as files next to the inventory document.
//
// Files are named photo_<id><ext>, extension-preserving. The reference handed
// back to callers is the file path; it is opaque above this package.
package photo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound marks a reference that no longer resolves to a file,
// e.g. a photo deleted out-of-band.
var ErrNotFound = errors.New("photo not found")

// Archive stores photo blobs in a single directory.
type Archive struct {
	dir string
}

// New returns an archive rooted at dir.
func New(dir string) *Archive {
	return &Archive{dir: dir}
}

// Store moves the uploaded temp file at srcPath into the archive under a name
// derived from the item id, preserving the original extension. It returns the
// final reference. On failure the source file is left in place for the caller
// to clean up.
func (a *Archive) Store(id int64, srcPath, ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	ref := filepath.Join(a.dir, fmt.Sprintf("photo_%d%s", id, ext))
	if err := os.Rename(srcPath, ref); err != nil {
		return "", fmt.Errorf("archiving photo for item %d: %w", id, err)
	}
	return ref, nil
}

// Retrieve returns the raw bytes at the given reference.
func (a *Archive) Retrieve(ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(ref))
	}
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	return data, nil
}
