package blob

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	l := NewLocal(filepath.Join(t.TempDir(), "uploads"))
	if err := l.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return l
}

func TestLocal_InitIdempotent(t *testing.T) {
	l := newTestStore(t)
	if err := l.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
}

func TestLocal_PutGet(t *testing.T) {
	l := newTestStore(t)
	data := []byte("a,b\n1,2\n")

	if err := l.Put("csv_1_test.csv", data); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := l.Get("csv_1_test.csv")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get() = %q, want %q", got, data)
	}
}

func TestLocal_GetMissing(t *testing.T) {
	l := newTestStore(t)
	_, err := l.Get("nope")
	if !errors.Is(err, ErrNotExist) {
		t.Fatalf("Get() error = %v, want ErrNotExist", err)
	}
}

func TestLocal_Delete(t *testing.T) {
	l := newTestStore(t)
	if err := l.Put("k", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := l.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := l.Get("k"); !errors.Is(err, ErrNotExist) {
		t.Errorf("Get() after delete error = %v, want ErrNotExist", err)
	}

	// Deleting a missing key is not an error.
	if err := l.Delete("k"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestLocal_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(filepath.Join(dir, "uploads"))
	if err := l.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if err := l.Put("../escape.csv", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.csv")); err == nil {
		t.Fatal("blob escaped the storage directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "uploads", "escape.csv")); err != nil {
		t.Errorf("blob not written inside the storage directory: %v", err)
	}
}
