package api

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/bornholm/mountns/internal/filesystem"
)

type ResolveResponse struct {
	Path    string `json:"path"`
	Backend string `json:"backend"`
	Suffix  string `json:"suffix"`
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")

	backend, suffix, err := h.registry.Resolve(r.Context(), p)
	if err != nil {
		writeError(w, r, "could not resolve path", err)
		return
	}

	res := ResolveResponse{
		Path:    p,
		Backend: filesystem.Describe(backend),
		Suffix:  suffix,
	}

	writeJSON(w, r, http.StatusOK, res)
}

type StatResponse struct {
	Path    string      `json:"path"`
	Name    string      `json:"name"`
	Size    int64       `json:"size"`
	Mode    fs.FileMode `json:"mode"`
	ModTime time.Time   `json:"modTime"`
	IsDir   bool        `json:"isDir"`
}

func (h *Handler) handleStat(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")

	fileInfo, err := h.registry.Stat(r.Context(), p)
	if err != nil {
		writeError(w, r, "could not stat path", err)
		return
	}

	res := StatResponse{
		Path:    p,
		Name:    fileInfo.Name(),
		Size:    fileInfo.Size(),
		Mode:    fileInfo.Mode(),
		ModTime: fileInfo.ModTime(),
		IsDir:   fileInfo.IsDir(),
	}

	writeJSON(w, r, http.StatusOK, res)
}
