package activity

import (
	"context"
	"time"
)

// MaxEntries caps the feed; the oldest entry is evicted past this.
const MaxEntries = 30

type EntryType string

const (
	TypeBooking EntryType = "booking"
	TypeEmail   EntryType = "email"
	TypeSMS     EntryType = "sms"
	TypeSystem  EntryType = "system"
)

// Entry is one record in the recent-activity feed.
type Entry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is the append-only activity feed behind the admin dashboard. List
// returns entries most-recent-first.
type Log interface {
	Record(ctx context.Context, typ EntryType, message string) error
	List(ctx context.Context) ([]Entry, error)
}
