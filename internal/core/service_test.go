package core

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/validata/backend/internal/blob"
	"github.com/validata/backend/internal/dataset"
	"github.com/validata/backend/internal/store"
)

const sampleCSV = "name,age\nAlice,30\nBob,25\nCarol,41\nDave,19\n"

func newTestService(t *testing.T) (*Service, *store.Memory, *blob.Local) {
	t.Helper()
	st := store.NewMemory()
	bl := blob.NewLocal(t.TempDir())
	if err := bl.Init(); err != nil {
		t.Fatalf("blob Init() error = %v", err)
	}
	return NewService(st, bl), st, bl
}

func TestUploadCSV(t *testing.T) {
	svc, st, bl := newTestService(t)
	ctx := context.Background()

	d, err := svc.UploadCSV(ctx, "people.csv", []byte(sampleCSV))
	if err != nil {
		t.Fatalf("UploadCSV() error = %v", err)
	}

	if !strings.HasPrefix(d.ID, "csv_") {
		t.Errorf("ID = %q, want csv_ prefix", d.ID)
	}
	if d.Name != "people" || d.FileName != "people.csv" {
		t.Errorf("Name/FileName = %q/%q", d.Name, d.FileName)
	}
	if d.RowCount != 4 {
		t.Errorf("RowCount = %d, want 4", d.RowCount)
	}
	if len(d.Preview) != 3 {
		t.Errorf("len(Preview) = %d, want 3", len(d.Preview))
	}
	if d.UploadedAt.IsZero() {
		t.Error("UploadedAt not set")
	}

	// Record persisted and bytes durably stored under the locator.
	if _, err := st.Get(ctx, d.ID); err != nil {
		t.Errorf("record not persisted: %v", err)
	}
	raw, err := bl.Get(d.FilePath)
	if err != nil {
		t.Fatalf("bytes not stored: %v", err)
	}
	if string(raw) != sampleCSV {
		t.Error("stored bytes differ from upload")
	}
}

func TestUploadCSV_BadExtension(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.UploadCSV(context.Background(), "people.txt", []byte(sampleCSV))
	var formatErr *dataset.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("UploadCSV() error = %v, want FormatError", err)
	}
}

// failingStore rejects inserts to exercise the cleanup path.
type failingStore struct {
	*store.Memory
}

func (s *failingStore) Insert(ctx context.Context, d *dataset.Dataset) error {
	return errors.New("db down")
}

func TestUploadCSV_InsertFailureCleansBlob(t *testing.T) {
	dir := t.TempDir()
	bl := blob.NewLocal(dir)
	if err := bl.Init(); err != nil {
		t.Fatalf("blob Init() error = %v", err)
	}
	svc := NewService(&failingStore{store.NewMemory()}, bl)

	_, err := svc.UploadCSV(context.Background(), "people.csv", []byte(sampleCSV))
	var storageErr *dataset.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("UploadCSV() error = %v, want StorageError", err)
	}

	// No orphaned bytes after the failed commit.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("storage dir has %d entries after failed upload, want 0", len(entries))
	}
}

func TestAnalyze(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	d, err := svc.UploadCSV(ctx, "people.csv", []byte(sampleCSV))
	if err != nil {
		t.Fatalf("UploadCSV() error = %v", err)
	}

	a, err := svc.Analyze(ctx, d.ID)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(a.Columns) != 2 {
		t.Fatalf("len(Columns) = %d, want 2", len(a.Columns))
	}
	if a.Columns["age"].DataType != "int64" {
		t.Errorf("age.DataType = %q, want int64", a.Columns["age"].DataType)
	}
	if a.Columns["name"].DataType != "string" {
		t.Errorf("name.DataType = %q, want string", a.Columns["name"].DataType)
	}

	// Analysis must not mutate the record.
	again, err := svc.Dataset(ctx, d.ID)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if again.RowCount != d.RowCount || len(again.Preview) != len(d.Preview) {
		t.Error("dataset record changed after analysis")
	}
}

func TestAnalyze_UnknownDataset(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Analyze(context.Background(), "csv_missing")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("Analyze() error = %v, want ErrNotFound", err)
	}
}

func TestAnalyze_FileGone(t *testing.T) {
	svc, _, bl := newTestService(t)
	ctx := context.Background()

	d, err := svc.UploadCSV(ctx, "people.csv", []byte(sampleCSV))
	if err != nil {
		t.Fatalf("UploadCSV() error = %v", err)
	}
	if err := bl.Delete(d.FilePath); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = svc.Analyze(ctx, d.ID)
	var missingErr *dataset.FileMissingError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Analyze() error = %v, want FileMissingError", err)
	}
	if missingErr.Locator != d.FilePath {
		t.Errorf("Locator = %q, want %q", missingErr.Locator, d.FilePath)
	}
}

func TestDatasets_NewestFirst(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	// Seed records with distinct timestamps so the order is deterministic.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"csv_old", "csv_new"} {
		d := &dataset.Dataset{
			ID:         id,
			Name:       id,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.Insert(ctx, d); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	list, err := svc.Datasets(ctx)
	if err != nil {
		t.Fatalf("Datasets() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != "csv_new" || list[1].ID != "csv_old" {
		t.Errorf("order = [%s %s], want newest first", list[0].ID, list[1].ID)
	}
}
