package booking

import "testing"

func TestSlotID(t *testing.T) {
	id := SlotID("2026-03-02", "14:00")
	if id != "2026-03-02-14:00" {
		t.Errorf("SlotID() = %q, want %q", id, "2026-03-02-14:00")
	}
}

func TestSplitSlotID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantDate string
		wantTime string
		wantOK   bool
	}{
		{"valid", "2026-03-02-14:00", "2026-03-02", "14:00", true},
		{"roundtrip", SlotID("2025-12-31", "09:00"), "2025-12-31", "09:00", true},
		{"too short", "2026-03-02", "", "", false},
		{"no separator", "2026-03-02x14:00", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, tm, ok := SplitSlotID(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("SplitSlotID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if date != tt.wantDate || tm != tt.wantTime {
				t.Errorf("SplitSlotID(%q) = (%q, %q), want (%q, %q)", tt.id, date, tm, tt.wantDate, tt.wantTime)
			}
		})
	}
}

func TestValidDateTime(t *testing.T) {
	if !ValidDate("2026-01-05") {
		t.Error("ValidDate rejected a valid date")
	}
	if ValidDate("05/01/2026") || ValidDate("2026-13-01") {
		t.Error("ValidDate accepted an invalid date")
	}
	if !ValidTime("09:00") {
		t.Error("ValidTime rejected a valid time")
	}
	if ValidTime("9am") || ValidTime("25:00") {
		t.Error("ValidTime accepted an invalid time")
	}
}

func TestStatusAndSessionValid(t *testing.T) {
	for _, s := range []SlotStatus{StatusAvailable, StatusPendingApproval, StatusBooked} {
		if !s.Valid() {
			t.Errorf("status %s should be valid", s)
		}
	}
	if SlotStatus("CANCELLED").Valid() {
		t.Error("unknown status should be invalid")
	}
	if !SessionVideo.Valid() || !SessionInPerson.Valid() {
		t.Error("session types should be valid")
	}
	if SessionType("PHONE").Valid() {
		t.Error("unknown session type should be invalid")
	}
}
