package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annerobin/therapy-booking/internal/activity"
	"github.com/annerobin/therapy-booking/internal/assist"
	"github.com/annerobin/therapy-booking/internal/notify"
	"github.com/annerobin/therapy-booking/internal/settings"
)

var (
	ErrSlotTaken          = errors.New("slot is no longer available")
	ErrRescheduleConflict = errors.New("target slot is not available")
)

// Service drives the slot lifecycle. It reads booking policy from the
// settings store per call, so a settings change applies to the next booking
// attempt, and fans appointment events out to the simulated notifier.
type Service struct {
	repo     Repository
	settings *settings.Store
	activity activity.Log
	notifier *notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, st *settings.Store, log activity.Log) *Service {
	return &Service{
		repo:     repo,
		settings: st,
		activity: log,
		notifier: notify.NewNotifier(log),
		now:      time.Now,
	}
}

func (s *Service) ListSlots(ctx context.Context) ([]TimeSlot, error) {
	return s.repo.GetSlots(ctx)
}

func (s *Service) OpenSlot(ctx context.Context, date, tm string) error {
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	if !ValidTime(tm) {
		return ErrInvalidTime
	}
	return s.repo.CreateSlot(ctx, date, tm)
}

// Book attempts to take a slot for a client and returns the resulting status
// (BOOKED or PENDING_APPROVAL depending on the auto-approve policy). A slot
// that is missing or already taken yields ErrSlotTaken; the caller should
// offer the client another slot.
func (s *Service) Book(ctx context.Context, slotID string, client ClientInfo) (SlotStatus, error) {
	if !client.SessionType.Valid() {
		return "", ErrInvalidSession
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load booking policy: %w", err)
	}

	ok, err := s.repo.BookSlot(ctx, slotID, client, cfg.AutoApprove)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSlotTaken
	}

	status := StatusPendingApproval
	kind := notify.EventRequest
	if cfg.AutoApprove {
		status = StatusBooked
		kind = notify.EventConfirm
	}

	date, tm, _ := SplitSlotID(slotID)
	s.notifier.Email(ctx, kind, date, tm, client.Email, client.Name)

	return status, nil
}

// SetStatus applies an admin status change. Approving a pending request
// produces a confirmation notification; releasing a slot back to AVAILABLE
// produces a cancellation one, and the repository clears the client data in
// the same write.
func (s *Service) SetStatus(ctx context.Context, slotID string, status SlotStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	prev, _ := s.findSlot(ctx, slotID)

	if err := s.repo.UpdateStatus(ctx, slotID, status); err != nil {
		return err
	}

	if prev == nil || prev.Status == status || prev.ClientEmail == "" {
		return nil
	}

	switch {
	case status == StatusAvailable:
		s.notifier.Email(ctx, notify.EventCancel, prev.Date, prev.Time, prev.ClientEmail, prev.ClientName)
	case status == StatusBooked && prev.Status == StatusPendingApproval:
		s.notifier.Email(ctx, notify.EventConfirm, prev.Date, prev.Time, prev.ClientEmail, prev.ClientName)
	}

	return nil
}

// Reschedule moves an appointment to a new date and time. The appointment
// keeps its client data and status; only the slot identity changes.
func (s *Service) Reschedule(ctx context.Context, oldSlotID, newDate, newTime string) error {
	if !ValidDate(newDate) {
		return ErrInvalidDate
	}
	if !ValidTime(newTime) {
		return ErrInvalidTime
	}

	prev, _ := s.findSlot(ctx, oldSlotID)

	ok, err := s.repo.RescheduleSlot(ctx, oldSlotID, newDate, newTime)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRescheduleConflict
	}

	if prev != nil && prev.ClientEmail != "" {
		s.notifier.Email(ctx, notify.EventReschedule, newDate, newTime, prev.ClientEmail, prev.ClientName)
	}

	return nil
}

// Summarize condenses the slot's client note, stores the result as the slot
// summary, and returns it.
func (s *Service) Summarize(ctx context.Context, slotID string) (string, error) {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return "", err
	}
	if slot == nil {
		return "", ErrSlotNotFound
	}

	summary := assist.SummarizeNote(slot.ClientNote)
	if err := s.repo.UpdateSummary(ctx, slotID, summary); err != nil {
		return "", err
	}
	return summary, nil
}

// DraftReply returns a templated client reply for an appointment.
func (s *Service) DraftReply(ctx context.Context, slotID string) (string, error) {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return "", err
	}
	if slot == nil {
		return "", ErrSlotNotFound
	}
	return assist.ClientResponse(slot.ClientName, slot.Date, slot.Time), nil
}

// SendReminder logs a simulated SMS reminder and returns a templated reminder
// email body for the practitioner.
func (s *Service) SendReminder(ctx context.Context, slotID string) (string, error) {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return "", err
	}
	if slot == nil {
		return "", ErrSlotNotFound
	}

	s.notifier.SMS(ctx, slot.ClientName, true)
	return assist.ReminderEmail(slot.ClientName, slot.Date, slot.Time), nil
}

// SendInvoice logs a simulated invoice notification for a booked slot. The
// invoice document itself is rendered by the presentation layer.
func (s *Service) SendInvoice(ctx context.Context, slotID string) error {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}

	s.notifier.Email(ctx, notify.EventInvoice, slot.Date, slot.Time, slot.ClientEmail, slot.ClientName)
	return nil
}

func (s *Service) SetSummary(ctx context.Context, slotID, summary string) error {
	return s.repo.UpdateSummary(ctx, slotID, summary)
}

func (s *Service) SetPrivateNote(ctx context.Context, slotID, note string) error {
	return s.repo.UpdatePrivateNote(ctx, slotID, note)
}

func (s *Service) Delete(ctx context.Context, slotID string) error {
	return s.repo.DeleteSlot(ctx, slotID)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	slots, err := s.repo.GetSlots(ctx)
	if err != nil {
		return Stats{}, err
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(slots, cfg, s.now()), nil
}

func (s *Service) Settings(ctx context.Context) (settings.AdminSettings, error) {
	return s.settings.Get(ctx)
}

func (s *Service) SaveSettings(ctx context.Context, cfg settings.AdminSettings) error {
	return s.settings.Save(ctx, cfg)
}

func (s *Service) Activity(ctx context.Context) ([]activity.Entry, error) {
	return s.activity.List(ctx)
}

func (s *Service) VerifyPassword(ctx context.Context, candidate string) (bool, error) {
	return s.repo.VerifyPassword(ctx, candidate)
}

// Seed replaces the whole collection with a generated demo calendar.
// Destructive; the caller gates it behind an explicit confirmation.
func (s *Service) Seed(ctx context.Context) (int, error) {
	slots := GenerateCalendar(s.now())
	if err := s.repo.SeedData(ctx, slots); err != nil {
		return 0, err
	}

	if err := s.activity.Record(ctx, activity.TypeSystem, "Jeu de données de démonstration généré"); err != nil {
		return len(slots), err
	}
	return len(slots), nil
}

// EnsureData seeds the demo calendar when the collection is empty, so a fresh
// local install starts with a populated app.
func (s *Service) EnsureData(ctx context.Context) error {
	slots, err := s.repo.GetSlots(ctx)
	if err != nil {
		return err
	}
	if len(slots) > 0 {
		return nil
	}
	_, err = s.Seed(ctx)
	return err
}

func (s *Service) findSlot(ctx context.Context, slotID string) (*TimeSlot, error) {
	slots, err := s.repo.GetSlots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, nil
}
