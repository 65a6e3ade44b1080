package api

import (
	"time"

	"github.com/annerobin/therapy-booking/internal/booking"
)

type BookSlotRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Note        string `json:"note"`
	SessionType string `json:"session_type" validate:"required,oneof=IN_PERSON VIDEO"`
}

type BookSlotResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type CreateSlotRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE PENDING_APPROVAL BOOKED"`
}

type RescheduleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type AnnotateRequest struct {
	Text string `json:"text"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SeedRequest struct {
	Confirm bool `json:"confirm"`
}

type SeedResponse struct {
	Seeded int `json:"seeded"`
}

type TextResponse struct {
	Text string `json:"text"`
}

// PublicSlot is the client-facing slot view. Client identities never leave
// the admin surface.
type PublicSlot struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	SessionType string `json:"session_type"`
}

func toPublicSlot(s booking.TimeSlot) PublicSlot {
	return PublicSlot{
		ID:          s.ID,
		Date:        s.Date,
		Time:        s.Time,
		Status:      string(s.Status),
		SessionType: string(s.SessionType),
	}
}

type ActivityEntry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
