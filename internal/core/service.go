// Package core wires the ingestion and profiling engine to its storage
// collaborators: the metadata store and the blob store. Each operation
// is one synchronous unit of work invoked by the request layer.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/validata/backend/internal/blob"
	"github.com/validata/backend/internal/dataset"
	"github.com/validata/backend/internal/logging"
	"github.com/validata/backend/internal/store"
)

// Service implements the dataset operations exposed over HTTP.
type Service struct {
	store store.Store
	blobs blob.Store
}

// NewService creates a Service over the given stores.
func NewService(st store.Store, bl blob.Store) *Service {
	return &Service{store: st, blobs: bl}
}

// UploadCSV ingests an uploaded file: parse, durably store the raw
// bytes, then commit the metadata record. The bytes are written before
// the record so a returned Dataset always has readable backing bytes;
// if the metadata commit fails the blob is removed again so no orphaned
// record or file survives the request.
func (s *Service) UploadCSV(ctx context.Context, fileName string, raw []byte) (*dataset.Dataset, error) {
	log := logging.FromContext(ctx)

	ing, err := dataset.Ingest(raw, fileName)
	if err != nil {
		log.Warn("csv ingestion rejected", "file", fileName, "error", err)
		return nil, err
	}

	id := "csv_" + uuid.NewString()
	key := id + "_" + fileName

	if err := s.blobs.Put(key, raw); err != nil {
		return nil, &dataset.StorageError{Op: "store uploaded file", Err: err}
	}

	d := &dataset.Dataset{
		ID:         id,
		Name:       ing.Name,
		FileName:   fileName,
		FilePath:   key,
		UploadedAt: time.Now().UTC(),
		Columns:    ing.Columns,
		RowCount:   ing.RowCount,
		Preview:    ing.Preview,
	}

	if err := s.store.Insert(ctx, d); err != nil {
		if derr := s.blobs.Delete(key); derr != nil {
			log.Error("orphaned blob after failed insert", "dataset_id", id, "key", key, "error", derr)
		}
		return nil, &dataset.StorageError{Op: "save dataset record", Err: err}
	}

	log.Info("dataset ingested", "dataset_id", id, "file", fileName, "rows", d.RowCount, "columns", len(d.Columns))
	return d, nil
}

// Datasets returns all dataset records, newest first.
func (s *Service) Datasets(ctx context.Context) ([]*dataset.Dataset, error) {
	return s.store.List(ctx)
}

// Dataset returns one dataset record by id.
func (s *Service) Dataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	return s.store.Get(ctx, id)
}

// Analyze re-reads the stored file for a dataset and profiles every
// recorded column. It never mutates the record; two concurrent calls on
// the same dataset are safe and merely duplicate work.
func (s *Service) Analyze(ctx context.Context, id string) (*dataset.Analysis, error) {
	log := logging.FromContext(ctx)

	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := s.blobs.Get(d.FilePath)
	if errors.Is(err, blob.ErrNotExist) {
		log.Error("dataset file is gone", "dataset_id", id, "locator", d.FilePath)
		return nil, &dataset.FileMissingError{Locator: d.FilePath}
	}
	if err != nil {
		return nil, &dataset.AnalysisError{DatasetID: id, Err: fmt.Errorf("read stored file: %w", err)}
	}

	t, err := dataset.ParseTable(raw)
	if err != nil {
		return nil, &dataset.AnalysisError{DatasetID: id, Err: err}
	}

	a, err := dataset.Profile(t, d.Columns)
	if err != nil {
		return nil, &dataset.AnalysisError{DatasetID: id, Err: err}
	}

	log.Info("dataset analyzed", "dataset_id", id, "columns", len(a.Columns), "recommendations", len(a.Recommendations))
	return a, nil
}
