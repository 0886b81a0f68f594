package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/validata/backend/internal/dataset"
	"github.com/validata/backend/internal/logging"
)

// envelope is the uniform response shape: {success, data} on success,
// {success:false, error} on failure.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// respondData writes a success envelope.
func respondData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// respondFailure writes a failure envelope with the given status.
func respondFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Error: message})
}

// respondError maps an engine error to a status code and a safe
// client-facing message, logging the full error server-side.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var (
		formatErr   *dataset.FormatError
		storageErr  *dataset.StorageError
		missingErr  *dataset.FileMissingError
		analysisErr *dataset.AnalysisError
	)
	switch {
	case errors.As(err, &formatErr):
		status = http.StatusBadRequest
		message = formatErr.Error()
	case errors.Is(err, dataset.ErrNotFound):
		status = http.StatusNotFound
		message = "Dataset not found"
	case errors.As(err, &missingErr):
		status = http.StatusInternalServerError
		message = missingErr.Error()
	case errors.As(err, &storageErr):
		message = "failed to store dataset"
	case errors.As(err, &analysisErr):
		message = "failed to analyze dataset"
	}

	logging.FromContext(r.Context()).Error("request error",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)

	respondFailure(w, status, message)
}
