package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/mount"
	"github.com/pkg/errors"
)

type ListMountsResponse struct {
	Mounts   []Mount `json:"mounts"`
	Total    int     `json:"total"`
	Capacity int     `json:"capacity"`
}

type Mount struct {
	Target  string `json:"target"`
	Backend string `json:"backend"`
}

func (h *Handler) handleListMounts(w http.ResponseWriter, r *http.Request) {
	entries := h.registry.List()

	mounts := make([]Mount, 0, len(entries))
	for _, e := range entries {
		mounts = append(mounts, toMount(e))
	}

	res := ListMountsResponse{
		Mounts:   mounts,
		Total:    len(mounts),
		Capacity: h.registry.Cap(),
	}

	writeJSON(w, r, http.StatusOK, res)
}

type CreateMountRequest struct {
	Target string `json:"target"`
	DSN    string `json:"dsn"`
}

type CreateMountResponse struct {
	Mount Mount `json:"mount"`
}

func (h *Handler) handleCreateMount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateMountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.DebugContext(ctx, "could not decode request", slog.Any("error", errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Target == "" || req.DSN == "" {
		writeError(w, r, "could not create mount", errors.Wrap(mount.ErrInvalidArgument, "target and dsn are required"))
		return
	}

	b, err := h.newBackend(req.DSN)
	if err != nil {
		writeError(w, r, "could not create backend", err)
		return
	}

	// The backend outlives the request
	b = filesystem.NewLogger(b, filesystem.SlogLogger(context.WithoutCancel(ctx)))

	// Connection errors are reported before the mount table lock is taken
	if err := filesystem.Open(ctx, b); err != nil {
		writeError(w, r, "could not open backend", err)
		return
	}

	if err := h.registry.Mount(ctx, b, req.Target); err != nil {
		if err := filesystem.Close(b); err != nil {
			slog.WarnContext(ctx, "could not close backend", slog.Any("error", errors.WithStack(err)))
		}

		writeError(w, r, "could not mount backend", err)
		return
	}

	res := CreateMountResponse{
		Mount: Mount{
			Target:  req.Target,
			Backend: filesystem.Describe(b),
		},
	}

	writeJSON(w, r, http.StatusCreated, res)
}

func (h *Handler) handleDeleteMount(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")

	if err := h.registry.Unmount(r.Context(), target); err != nil {
		writeError(w, r, "could not unmount backend", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toMount(e mount.Entry) Mount {
	return Mount{
		Target:  e.Path,
		Backend: filesystem.Describe(e.Backend),
	}
}
