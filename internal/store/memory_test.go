package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/validata/backend/internal/dataset"
)

func TestMemory_InsertGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	d := &dataset.Dataset{ID: "csv_1", Name: "one", Columns: []string{"a"}}
	if err := s.Insert(ctx, d); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := s.Get(ctx, "csv_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "one" {
		t.Errorf("Name = %q, want %q", got.Name, "one")
	}
}

func TestMemory_GetUnknown(t *testing.T) {
	s := NewMemory()
	_, err := s.Get(context.Background(), "csv_missing")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemory_ListNewestFirst(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"csv_a", "csv_b", "csv_c"} {
		d := &dataset.Dataset{ID: id, UploadedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Insert(ctx, d); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"csv_c", "csv_b", "csv_a"}
	if len(list) != len(want) {
		t.Fatalf("len(list) = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d].ID = %q, want %q", i, list[i].ID, id)
		}
	}
}
