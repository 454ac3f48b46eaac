package api

import (
	"net/http"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/mount"
)

type BackendFactory func(dsn string) (filesystem.Backend, error)

type Handler struct {
	registry   *mount.Registry
	newBackend BackendFactory
	mux        *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(registry *mount.Registry, newBackend BackendFactory) *Handler {
	h := &Handler{
		registry:   registry,
		newBackend: newBackend,
		mux:        &http.ServeMux{},
	}

	h.mux.HandleFunc("GET /mounts", h.handleListMounts)
	h.mux.HandleFunc("POST /mounts", h.handleCreateMount)
	h.mux.HandleFunc("DELETE /mounts", h.handleDeleteMount)
	h.mux.HandleFunc("GET /resolve", h.handleResolve)
	h.mux.HandleFunc("GET /stat", h.handleStat)

	return h
}

var _ http.Handler = &Handler{}
