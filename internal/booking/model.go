package booking

import "time"

type SlotStatus string

const (
	StatusAvailable       SlotStatus = "AVAILABLE"
	StatusPendingApproval SlotStatus = "PENDING_APPROVAL"
	StatusBooked          SlotStatus = "BOOKED"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPendingApproval, StatusBooked:
		return true
	}
	return false
}

type SessionType string

const (
	SessionInPerson SessionType = "IN_PERSON"
	SessionVideo    SessionType = "VIDEO"
)

func (t SessionType) Valid() bool {
	return t == SessionInPerson || t == SessionVideo
}

// TimeSlot is one bookable date+time unit. Its id is derived from the
// date and time, so id equality is the date+time uniqueness constraint.
type TimeSlot struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"` // YYYY-MM-DD, practice-local
	Time         string      `json:"time"` // HH:MM
	Status       SlotStatus  `json:"status"`
	SessionType  SessionType `json:"sessionType"`
	ClientName   string      `json:"clientName,omitempty"`
	ClientEmail  string      `json:"clientEmail,omitempty"`
	ClientPhone  string      `json:"clientPhone,omitempty"`
	ClientNote   string      `json:"clientNote,omitempty"`
	AISummary    string      `json:"aiSummary,omitempty"`
	PrivateNotes string      `json:"privateNotes,omitempty"`
}

// ClientInfo is the booking form payload applied to a slot when it is taken.
type ClientInfo struct {
	Name        string
	Email       string
	Phone       string
	Note        string
	SessionType SessionType
}

// SlotID derives the slot identifier from its date and time.
func SlotID(date, tm string) string {
	return date + "-" + tm
}

// SplitSlotID recovers the date and time from a derived id. The date part is
// fixed-width ISO, so the split point is constant.
func SplitSlotID(id string) (date, tm string, ok bool) {
	const dateLen = len("2006-01-02")
	if len(id) <= dateLen+1 || id[dateLen] != '-' {
		return "", "", false
	}
	return id[:dateLen], id[dateLen+1:], true
}

// clearClientData resets a slot to a bare AVAILABLE placeholder. Used on
// rejection and cancellation, which are the same transition.
func (s *TimeSlot) clearClientData() {
	s.Status = StatusAvailable
	s.ClientName = ""
	s.ClientEmail = ""
	s.ClientPhone = ""
	s.ClientNote = ""
	s.AISummary = ""
	s.PrivateNotes = ""
}

func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func ValidTime(tm string) bool {
	_, err := time.Parse("15:04", tm)
	return err == nil
}
