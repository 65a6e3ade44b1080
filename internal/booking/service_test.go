package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/annerobin/therapy-booking/internal/activity"
	"github.com/annerobin/therapy-booking/internal/settings"
	"github.com/annerobin/therapy-booking/internal/store"
)

func newTestService(t *testing.T) (*Service, activity.Log) {
	t.Helper()
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	log := activity.NewKVLog(kv)
	return NewService(NewLocalRepository(kv), settings.NewStore(kv), log), log
}

func TestBookReadsPolicyPerCall(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.OpenSlot(ctx, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}
	if err := svc.OpenSlot(ctx, "2026-09-01", "11:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}

	// Defaults auto-approve.
	status, err := svc.Book(ctx, "2026-09-01-10:00", testClient)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if status != StatusBooked {
		t.Errorf("status = %s, want %s with auto-approve on", status, StatusBooked)
	}

	// Turning auto-approve off applies to the very next booking.
	cfg, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	cfg.AutoApprove = false
	if err := svc.SaveSettings(ctx, cfg); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	status, err = svc.Book(ctx, "2026-09-01-11:00", testClient)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if status != StatusPendingApproval {
		t.Errorf("status = %s, want %s with auto-approve off", status, StatusPendingApproval)
	}
}

func TestBookConflictAndValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.OpenSlot(ctx, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}
	if _, err := svc.Book(ctx, "2026-09-01-10:00", testClient); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if _, err := svc.Book(ctx, "2026-09-01-10:00", testClient); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Book() on taken slot error = %v, want ErrSlotTaken", err)
	}
	if _, err := svc.Book(ctx, "2030-01-01-09:00", testClient); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Book() on missing slot error = %v, want ErrSlotTaken", err)
	}

	bad := testClient
	bad.SessionType = "PHONE"
	if _, err := svc.Book(ctx, "2026-09-01-10:00", bad); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Book() with bad session error = %v, want ErrInvalidSession", err)
	}
}

func TestBookRecordsActivity(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	if err := svc.OpenSlot(ctx, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}
	if _, err := svc.Book(ctx, "2026-09-01-10:00", testClient); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	entries, err := log.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var gotBooking, gotEmail bool
	for _, e := range entries {
		switch e.Type {
		case activity.TypeBooking:
			gotBooking = true
			if !strings.Contains(e.Message, testClient.Name) {
				t.Errorf("booking entry %q should mention the client", e.Message)
			}
		case activity.TypeEmail:
			gotEmail = true
			if !strings.Contains(e.Message, testClient.Email) {
				t.Errorf("email entry %q should mention the recipient", e.Message)
			}
		}
	}
	if !gotBooking || !gotEmail {
		t.Errorf("want booking and email entries, got booking=%v email=%v", gotBooking, gotEmail)
	}
}

func TestSetStatusValidation(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.SetStatus(context.Background(), "x", "CANCELLED"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("SetStatus() error = %v, want ErrInvalidStatus", err)
	}
}

func TestRescheduleConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.OpenSlot(ctx, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}
	if err := svc.OpenSlot(ctx, "2026-09-02", "10:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}
	if _, err := svc.Book(ctx, "2026-09-01-10:00", testClient); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	other := testClient
	other.Email = "other@email.com"
	if _, err := svc.Book(ctx, "2026-09-02-10:00", other); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	err := svc.Reschedule(ctx, "2026-09-01-10:00", "2026-09-02", "10:00")
	if !errors.Is(err, ErrRescheduleConflict) {
		t.Errorf("Reschedule() into occupied slot error = %v, want ErrRescheduleConflict", err)
	}

	if err := svc.Reschedule(ctx, "2026-09-01-10:00", "2026-09-05", "14:00"); err != nil {
		t.Fatalf("Reschedule() into free slot error = %v", err)
	}
}

func TestRescheduleValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Reschedule(ctx, "x", "bad-date", "10:00"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
	if err := svc.Reschedule(ctx, "x", "2026-09-01", "bad"); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("error = %v, want ErrInvalidTime", err)
	}
}

func TestSummarize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.OpenSlot(ctx, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("OpenSlot() error = %v", err)
	}
	client := testClient
	client.Note = strings.Repeat("a", 250)
	if _, err := svc.Book(ctx, "2026-09-01-10:00", client); err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	summary, err := svc.Summarize(ctx, "2026-09-01-10:00")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len([]rune(summary)) != 203 || !strings.HasSuffix(summary, "...") {
		t.Errorf("summary = %q, want 200 chars plus ellipsis", summary)
	}

	slots, _ := svc.ListSlots(ctx)
	if slots[0].AISummary != summary {
		t.Error("summary not persisted on the slot")
	}

	if _, err := svc.Summarize(ctx, "2030-01-01-09:00"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Summarize() on missing slot error = %v, want ErrSlotNotFound", err)
	}
}

func TestEnsureDataSeedsEmptyCollectionOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.EnsureData(ctx); err != nil {
		t.Fatalf("EnsureData() error = %v", err)
	}
	slots, err := svc.ListSlots(ctx)
	if err != nil {
		t.Fatalf("ListSlots() error = %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("EnsureData() should seed an empty collection")
	}

	// A second run must not reseed.
	before := len(slots)
	if err := svc.Delete(ctx, slots[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.EnsureData(ctx); err != nil {
		t.Fatalf("EnsureData() error = %v", err)
	}
	after, _ := svc.ListSlots(ctx)
	if len(after) != before-1 {
		t.Errorf("EnsureData() reseeded a non-empty collection: %d -> %d", before-1, len(after))
	}
}

func TestSeedReportsCount(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	slots, _ := svc.ListSlots(ctx)
	if len(slots) != n {
		t.Errorf("Seed() reported %d slots, collection has %d", n, len(slots))
	}

	entries, _ := log.List(ctx)
	if len(entries) == 0 || entries[0].Type != activity.TypeSystem {
		t.Error("Seed() should record a system activity entry")
	}
}
