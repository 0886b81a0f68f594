package web

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/validata/backend/internal/dataset"
)

// handleRoot answers the health/welcome route.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"Welcome to the Data Validator API"}`))
}

// handleListDatasets returns all datasets, newest first.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.service.Datasets(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if datasets == nil {
		datasets = []*dataset.Dataset{}
	}
	respondData(w, datasets)
}

// handleGetDataset returns a single dataset by id.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	d, err := s.service.Dataset(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, d)
}

// handleUploadDataset ingests a multipart CSV upload.
func (s *Server) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondFailure(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondFailure(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	d, err := s.service.UploadCSV(r.Context(), header.Filename, raw)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, d)
}

// handleAnalyzeDataset profiles a stored dataset and returns per-column
// statistics plus validation recommendations.
func (s *Server) handleAnalyzeDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	a, err := s.service.Analyze(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, a)
}
