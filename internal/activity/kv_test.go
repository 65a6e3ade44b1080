package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/annerobin/therapy-booking/internal/store"
)

func newTestLog(t *testing.T) *KVLog {
	t.Helper()
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return NewKVLog(kv)
}

func TestRecordAndList(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	if err := log.Record(ctx, TypeBooking, "first"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := log.Record(ctx, TypeEmail, "second"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := log.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Message != "second" || entries[1].Message != "first" {
		t.Errorf("entries not most-recent-first: %q, %q", entries[0].Message, entries[1].Message)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("entries need distinct ids")
	}
	if entries[0].Type != TypeEmail {
		t.Errorf("entry type = %s, want %s", entries[0].Type, TypeEmail)
	}
}

func TestCapEvictsOldest(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	// Fixed clock so timestamps are distinct and ordered.
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	i := 0
	log.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	for n := 0; n < 35; n++ {
		if err := log.Record(ctx, TypeSystem, fmt.Sprintf("entry %d", n)); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := log.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != MaxEntries {
		t.Fatalf("len(entries) = %d, want %d", len(entries), MaxEntries)
	}
	if entries[0].Message != "entry 34" {
		t.Errorf("newest entry = %q, want %q", entries[0].Message, "entry 34")
	}
	if entries[len(entries)-1].Message != "entry 5" {
		t.Errorf("oldest kept entry = %q, want %q", entries[len(entries)-1].Message, "entry 5")
	}
}

func TestListEmpty(t *testing.T) {
	log := newTestLog(t)

	entries, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
