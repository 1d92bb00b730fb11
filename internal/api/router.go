package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventar/internal/registry"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(reg *registry.Registry, uploadDir string) http.Handler {
	mux := http.NewServeMux()

	inventory := &InventoryHandler{Registry: reg, UploadDir: uploadDir}

	mux.HandleFunc("POST /register", inventory.Register)
	mux.HandleFunc("GET /inventory", inventory.List)
	mux.HandleFunc("GET /inventory/{id}", inventory.Get)
	mux.HandleFunc("PUT /inventory/{id}", inventory.Update)
	mux.HandleFunc("GET /inventory/{id}/photo", inventory.GetPhoto)
	mux.HandleFunc("GET /inventory/{id}/thumbnail", inventory.GetThumbnail)

	mux.HandleFunc("GET /healthz", inventory.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
