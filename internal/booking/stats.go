package booking

import (
	"time"

	"github.com/annerobin/therapy-booking/internal/settings"
)

// Stats are the dashboard counters, recomputed from the live collection on
// every read.
type Stats struct {
	TotalAppointments int     `json:"totalAppointments"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalClients      int     `json:"totalClients"`
	Upcoming          int     `json:"upcoming"`
	PendingRequests   int     `json:"pendingRequests"`
}

// ComputeStats derives the counters from the slot collection and current
// settings. Revenue uses the current per-session price, not the price at the
// time each booking was made.
func ComputeStats(slots []TimeSlot, cfg settings.AdminSettings, now time.Time) Stats {
	today := now.Format("2006-01-02")

	var st Stats
	clients := make(map[string]struct{})

	for _, s := range slots {
		switch s.Status {
		case StatusPendingApproval:
			st.PendingRequests++
		case StatusBooked:
			st.TotalAppointments++
			if s.ClientEmail != "" {
				clients[s.ClientEmail] = struct{}{}
			}
			// Dates are ISO strings, so lexicographic order is date order.
			if s.Date >= today {
				st.Upcoming++
			}
		}
	}

	st.TotalClients = len(clients)
	st.TotalRevenue = float64(st.TotalAppointments) * cfg.PricePerSession
	return st
}
