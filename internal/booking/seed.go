package booking

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var seedTimes = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00", "18:00"}

var seedNotes = []string{
	"Problèmes de communication.",
	"Préparation mariage.",
	"Stress au travail.",
	"Demande de suivi.",
	"Confiance en soi.",
	"Anxiété sociale.",
	"Thérapie de couple.",
}

// GenerateCalendar builds the demonstration calendar: 30 days around today
// (10 past, 20 future), Sundays excluded, eight fixed times per day, with
// randomized bookings drawn from a small generated client pool. Callers seed
// gofakeit themselves when they need reproducibility.
func GenerateCalendar(today time.Time) []TimeSlot {
	clients := make([]ClientInfo, len(seedNotes))
	for i := range clients {
		clients[i] = ClientInfo{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
			Phone: gofakeit.Phone(),
			Note:  seedNotes[i],
		}
	}

	var slots []TimeSlot
	for offset := -10; offset < 20; offset++ {
		day := today.AddDate(0, 0, offset)
		if day.Weekday() == time.Sunday {
			continue
		}
		date := day.Format("2006-01-02")

		for _, tm := range seedTimes {
			roll := gofakeit.Float64Range(0, 1)
			status := StatusAvailable
			if offset < 0 {
				if roll > 0.6 {
					status = StatusBooked
				}
			} else {
				switch {
				case roll > 0.85:
					status = StatusBooked
				case roll > 0.80:
					status = StatusPendingApproval
				}
			}

			slot := TimeSlot{
				ID:          SlotID(date, tm),
				Date:        date,
				Time:        tm,
				Status:      status,
				SessionType: SessionInPerson,
			}
			if gofakeit.Float64Range(0, 1) > 0.7 {
				slot.SessionType = SessionVideo
			}

			if status != StatusAvailable {
				c := clients[gofakeit.Number(0, len(clients)-1)]
				slot.ClientName = c.Name
				slot.ClientEmail = c.Email
				slot.ClientPhone = c.Phone
				slot.ClientNote = c.Note
				if status == StatusBooked && gofakeit.Bool() {
					slot.PrivateNotes = "Séance importante."
				}
			}

			slots = append(slots, slot)
		}
	}

	return slots
}
