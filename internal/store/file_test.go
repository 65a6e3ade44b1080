package store

import (
	"context"
	"errors"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "slots", []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "slots")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[{"id":"x"}]` {
		t.Errorf("Get() = %q", got)
	}

	// Overwrite replaces the value.
	if err := s.Put(ctx, "slots", []byte(`[]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err = s.Get(ctx, "slots")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get() after overwrite = %q", got)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	_, err = s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() error = %v, want ErrKeyNotFound", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "auth", []byte("abc")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "auth"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "auth"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrKeyNotFound", err)
	}

	// Deleting a missing key is a no-op.
	if err := s.Delete(ctx, "auth"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := first.Put(ctx, "settings", []byte(`{"autoApprove":false}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	got, err := second.Get(ctx, "settings")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"autoApprove":false}` {
		t.Errorf("Get() = %q", got)
	}
}
