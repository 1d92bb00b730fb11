package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"inventar/internal/imaging"
	"inventar/internal/model"
	"inventar/internal/photo"
	"inventar/internal/registry"
)

// maxUploadSize bounds a single register request, photo included.
const maxUploadSize = 10 << 20

// InventoryHandler handles the item registry endpoints.
type InventoryHandler struct {
	Registry *registry.Registry

	// UploadDir is where photo uploads are spooled before the archive
	// takes ownership. Same filesystem as the archive so the final rename
	// is atomic.
	UploadDir string
}

type updateItemRequest struct {
	Name        string `json:"inventory_name"`
	Description string `json:"description"`
}

// Register handles POST /register. The form accepts both the capitalized and
// lowercase field names existing clients send.
func (h *InventoryHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid or oversized multipart form")
		return
	}

	name := formValue(r, "Name", "inventory_name")
	description := formValue(r, "Description", "description")

	params := registry.CreateParams{
		Name:        name,
		Description: description,
	}

	file, header, err := formFile(r, "Photo", "photo")
	switch {
	case err == nil:
		defer file.Close()

		tmpPath, err := h.spoolUpload(file)
		if err != nil {
			slog.Error("spooling photo upload", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to store photo")
			return
		}
		// No-op once the archive has renamed the file away.
		defer os.Remove(tmpPath)

		params.PhotoPath = tmpPath
		params.PhotoExt = filepath.Ext(header.Filename)
	case errors.Is(err, http.ErrMissingFile):
		// No photo supplied.
	default:
		jsonError(w, http.StatusBadRequest, "invalid photo upload")
		return
	}

	item, err := h.Registry.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, registry.ErrNameRequired) {
			jsonError(w, http.StatusBadRequest, "name required")
			return
		}
		slog.Error("creating item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// List handles GET /inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Registry.List(r.Context())
	if err != nil {
		slog.Error("listing items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = model.Inventory{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /inventory/{id}. The response shape depends on the item:
// raw photo bytes when a photo is attached, item JSON otherwise. Existing
// clients depend on this branch, so it is preserved as-is; the explicit
// /photo endpoint is the non-ambiguous alternative.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.Registry.Get(r.Context(), id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}

	if item.HasPhoto() {
		h.servePhoto(w, r, id, *item.Photo)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /inventory/{id}. Empty or absent fields leave the stored
// values untouched.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Registry.Update(r.Context(), id, registry.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetPhoto handles GET /inventory/{id}/photo.
func (h *InventoryHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.Registry.Get(r.Context(), id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	if !item.HasPhoto() {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}
	h.servePhoto(w, r, id, *item.Photo)
}

// GetThumbnail handles GET /inventory/{id}/thumbnail.
func (h *InventoryHandler) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	data, err := h.Registry.Photo(r.Context(), id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}

	thumb, err := imaging.Thumbnail(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo is not a supported image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(thumb)
}

// Health handles GET /healthz by checking that the inventory document loads.
func (h *InventoryHandler) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Registry.List(r.Context()); err != nil {
		slog.Error("health check", "error", err)
		jsonError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// servePhoto writes the raw photo bytes for the item. The content type comes
// from the reference's extension, defaulting to JPEG as existing clients
// expect.
func (h *InventoryHandler) servePhoto(w http.ResponseWriter, r *http.Request, id int64, ref string) {
	data, err := h.Registry.Photo(r.Context(), id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(ref))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// writeRegistryError translates a registry error into a response. Internal
// detail stays in the log; clients get a stable identifier.
func (h *InventoryHandler) writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, registry.ErrNoPhoto), errors.Is(err, photo.ErrNotFound):
		jsonError(w, http.StatusNotFound, "no photo")
	default:
		slog.Error("registry operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// spoolUpload copies the multipart part to a temp file in the upload
// directory and returns its path.
func (h *InventoryHandler) spoolUpload(src io.Reader) (string, error) {
	tmp, err := os.CreateTemp(h.UploadDir, "upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// itemID parses the {id} path value, replying 400 on garbage input.
func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}

// formValue returns the first non-empty form field among names.
func formValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}
	return ""
}

// formFile returns the first file part found among names.
func formFile(r *http.Request, names ...string) (multipart.File, *multipart.FileHeader, error) {
	var err error
	for _, name := range names {
		var file multipart.File
		var header *multipart.FileHeader
		file, header, err = r.FormFile(name)
		if err == nil {
			return file, header, nil
		}
	}
	return nil, nil, err
}
