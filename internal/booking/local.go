package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/annerobin/therapy-booking/internal/auth"
	"github.com/annerobin/therapy-booking/internal/store"
)

// SlotsKey is where the local backend keeps the whole collection, serialized
// as one JSON blob.
const SlotsKey = "slots"

// LocalRepository serializes the slot collection as a single blob in a
// key-value store. Every mutation loads the collection, changes it in memory,
// and rewrites the blob; the mutex makes the read-modify-write sequence the
// compare-then-set guarantee for in-process callers.
type LocalRepository struct {
	kv store.Store
	mu sync.Mutex
}

func NewLocalRepository(kv store.Store) *LocalRepository {
	return &LocalRepository{kv: kv}
}

func (r *LocalRepository) load(ctx context.Context) ([]TimeSlot, error) {
	data, err := r.kv.Get(ctx, SlotsKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load slots: %w", err)
	}

	var slots []TimeSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return slots, nil
}

func (r *LocalRepository) save(ctx context.Context, slots []TimeSlot) error {
	if slots == nil {
		slots = []TimeSlot{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	if err := r.kv.Put(ctx, SlotsKey, data); err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	return nil
}

func (r *LocalRepository) GetSlots(ctx context.Context) ([]TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *LocalRepository) CreateSlot(ctx context.Context, date, tm string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return err
	}

	id := SlotID(date, tm)
	for _, s := range slots {
		if s.ID == id {
			return nil
		}
	}

	slots = append(slots, TimeSlot{
		ID:          id,
		Date:        date,
		Time:        tm,
		Status:      StatusAvailable,
		SessionType: SessionInPerson,
	})
	return r.save(ctx, slots)
}

func (r *LocalRepository) BookSlot(ctx context.Context, slotID string, client ClientInfo, autoApprove bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range slots {
		if slots[i].ID != slotID {
			continue
		}
		if slots[i].Status != StatusAvailable {
			return false, nil
		}

		if autoApprove {
			slots[i].Status = StatusBooked
		} else {
			slots[i].Status = StatusPendingApproval
		}
		slots[i].ClientName = client.Name
		slots[i].ClientEmail = client.Email
		slots[i].ClientPhone = client.Phone
		slots[i].ClientNote = client.Note
		slots[i].SessionType = client.SessionType

		if err := r.save(ctx, slots); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (r *LocalRepository) UpdateStatus(ctx context.Context, slotID string, status SlotStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range slots {
		if slots[i].ID != slotID {
			continue
		}
		if status == StatusAvailable {
			slots[i].clearClientData()
		} else {
			slots[i].Status = status
		}
		return r.save(ctx, slots)
	}

	return nil
}

func (r *LocalRepository) RescheduleSlot(ctx context.Context, oldSlotID, newDate, newTime string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	oldIdx := -1
	for i := range slots {
		if slots[i].ID == oldSlotID {
			oldIdx = i
			break
		}
	}
	if oldIdx == -1 {
		return false, nil
	}

	newID := SlotID(newDate, newTime)
	for i := range slots {
		if slots[i].ID == newID && slots[i].Status != StatusAvailable {
			// Destination holds another appointment.
			return false, nil
		}
	}

	moved := slots[oldIdx]
	moved.ID = newID
	moved.Date = newDate
	moved.Time = newTime

	// Drop the source and any stale AVAILABLE placeholder at the target,
	// then commit the whole collection in one write.
	next := slots[:0]
	for _, s := range slots {
		if s.ID == oldSlotID || s.ID == newID {
			continue
		}
		next = append(next, s)
	}
	next = append(next, moved)

	if err := r.save(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func (r *LocalRepository) UpdateSummary(ctx context.Context, slotID, summary string) error {
	return r.updateField(ctx, slotID, func(s *TimeSlot) { s.AISummary = summary })
}

func (r *LocalRepository) UpdatePrivateNote(ctx context.Context, slotID, note string) error {
	return r.updateField(ctx, slotID, func(s *TimeSlot) { s.PrivateNotes = note })
}

func (r *LocalRepository) updateField(ctx context.Context, slotID string, apply func(*TimeSlot)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range slots {
		if slots[i].ID == slotID {
			apply(&slots[i])
			return r.save(ctx, slots)
		}
	}

	return nil
}

func (r *LocalRepository) DeleteSlot(ctx context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return err
	}

	next := slots[:0]
	found := false
	for _, s := range slots {
		if s.ID == slotID {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		return nil
	}
	return r.save(ctx, next)
}

func (r *LocalRepository) VerifyPassword(ctx context.Context, candidate string) (bool, error) {
	return auth.VerifyStored(ctx, r.kv, candidate)
}

func (r *LocalRepository) SeedData(ctx context.Context, slots []TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, slots)
}
