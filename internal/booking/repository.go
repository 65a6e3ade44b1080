package booking

import (
	"context"
	"errors"
)

var (
	ErrSlotNotFound   = errors.New("slot not found")
	ErrInvalidStatus  = errors.New("invalid slot status")
	ErrInvalidDate    = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidTime    = errors.New("invalid time, want HH:MM")
	ErrInvalidSession = errors.New("invalid session type")
)

// Repository owns the slot collection. Two implementations exist: a
// file-backed local store and a Postgres store. Both must provide the same
// observable contract: idempotent create, compare-then-set booking, guarded
// reschedule.
type Repository interface {
	// GetSlots returns the full collection, unordered.
	GetSlots(ctx context.Context) ([]TimeSlot, error)

	// CreateSlot inserts a new AVAILABLE slot at the derived id. Creating a
	// slot that already exists is a no-op.
	CreateSlot(ctx context.Context, date, tm string) error

	// BookSlot takes an AVAILABLE slot for a client. It reports false, with
	// no change, when the slot is missing or not available; at most one of
	// any concurrent callers observes true.
	BookSlot(ctx context.Context, slotID string, client ClientInfo, autoApprove bool) (bool, error)

	// UpdateStatus sets the slot status. A transition to AVAILABLE clears
	// all client data, the summary, and private notes in the same write.
	// Unknown ids are ignored.
	UpdateStatus(ctx context.Context, slotID string, status SlotStatus) error

	// RescheduleSlot moves the appointment at oldSlotID to a new date and
	// time, preserving client data and status under a new id. It reports
	// false when the source is missing or the target id is occupied by a
	// non-available slot.
	RescheduleSlot(ctx context.Context, oldSlotID, newDate, newTime string) (bool, error)

	// UpdateSummary sets the derived note summary. Unknown ids are ignored.
	UpdateSummary(ctx context.Context, slotID, summary string) error

	// UpdatePrivateNote sets the practitioner-only note. Unknown ids are
	// ignored.
	UpdatePrivateNote(ctx context.Context, slotID, note string) error

	// DeleteSlot removes the record if present.
	DeleteSlot(ctx context.Context, slotID string) error

	// VerifyPassword compares the candidate against the stored admin
	// password hash. A missing hash means login is disabled and always
	// reports false.
	VerifyPassword(ctx context.Context, candidate string) (bool, error)

	// SeedData replaces the entire collection. Destructive; callers must
	// confirm explicitly.
	SeedData(ctx context.Context, slots []TimeSlot) error
}
