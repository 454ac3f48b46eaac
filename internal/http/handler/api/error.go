package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/bornholm/mountns/internal/mount"
	"github.com/pkg/errors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, mount.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, mount.ErrInvalidArgument), errors.Is(err, mount.ErrInvalidPath), errors.Is(err, backend.ErrSchemeNotRegistered):
		return http.StatusBadRequest
	case errors.Is(err, mount.ErrAlreadyMounted):
		return http.StatusConflict
	case errors.Is(err, mount.ErrNotADirectory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, mount.ErrExhausted):
		return http.StatusInsufficientStorage
	case errors.Is(err, filesystem.ErrNotMounted):
		return http.StatusServiceUnavailable
	case errors.Is(err, os.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	ctx := r.Context()
	status := errorStatus(err)

	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, message, slog.Any("error", errors.WithStack(err)))
	} else {
		slog.DebugContext(ctx, message, slog.Any("error", err))
	}

	res := ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if status == http.StatusInternalServerError {
		res.Message = message
	}

	writeJSON(w, r, status, res)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, res any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slog.Any("error", errors.WithStack(err)))
	}
}
