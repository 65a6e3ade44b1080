package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/annerobin/therapy-booking/internal/booking"
	"github.com/annerobin/therapy-booking/internal/settings"
)

func adminListSlotsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := svc.ListSlots(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if slots == nil {
			slots = []booking.TimeSlot{}
		}
		writeJSON(w, http.StatusOK, slots)
	}
}

func createSlotHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSlotRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		if err := svc.OpenSlot(r.Context(), req.Date, req.Time); err != nil {
			handleAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": booking.SlotID(req.Date, req.Time)})
	}
}

func updateStatusHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateStatusRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		slotID := chi.URLParam(r, "id")
		if err := svc.SetStatus(r.Context(), slotID, booking.SlotStatus(req.Status)); err != nil {
			handleAdminError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func rescheduleSlotHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RescheduleRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		slotID := chi.URLParam(r, "id")
		if err := svc.Reschedule(r.Context(), slotID, req.Date, req.Time); err != nil {
			handleAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": booking.SlotID(req.Date, req.Time)})
	}
}

func updateSummaryHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnnotateRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		if err := svc.SetSummary(r.Context(), chi.URLParam(r, "id"), req.Text); err != nil {
			handleAdminError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func updatePrivateNoteHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnnotateRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		if err := svc.SetPrivateNote(r.Context(), chi.URLParam(r, "id"), req.Text); err != nil {
			handleAdminError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func summarizeSlotHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summarize(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TextResponse{Text: summary})
	}
}

func draftReplyHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.DraftReply(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TextResponse{Text: text})
	}
}

func sendReminderHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.SendReminder(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleAdminError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TextResponse{Text: text})
	}
}

func sendInvoiceHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.SendInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleAdminError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteSlotHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleAdminError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func statsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func getSettingsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Settings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func saveSettingsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg settings.AdminSettings
		if err := decodeValid(r, &cfg); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		if err := svc.SaveSettings(r.Context(), cfg); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func activityHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Activity(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ActivityEntry, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, ActivityEntry{
				ID:        e.ID,
				Type:      string(e.Type),
				Message:   e.Message,
				Timestamp: e.Timestamp,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func seedHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SeedRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}
		if !req.Confirm {
			writeError(w, http.StatusBadRequest, "confirmation_required", "seeding replaces all data; set confirm=true")
			return
		}

		count, err := svc.Seed(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, SeedResponse{Seeded: count})
	}
}

func handleAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, booking.ErrRescheduleConflict):
		writeError(w, http.StatusConflict, "target_slot_occupied", err.Error())
	case errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrInvalidTime),
		errors.Is(err, booking.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
