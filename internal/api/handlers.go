package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/annerobin/therapy-booking/internal/auth"
	"github.com/annerobin/therapy-booking/internal/booking"
)

var validate = validator.New()

func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("could not parse JSON")
	}
	return validate.Struct(v)
}

func listSlotsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := svc.ListSlots(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]PublicSlot, 0, len(slots))
		for _, s := range slots {
			resp = append(resp, toPublicSlot(s))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func bookSlotHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookSlotRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		slotID := chi.URLParam(r, "id")
		status, err := svc.Book(r.Context(), slotID, booking.ClientInfo{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Note:        req.Note,
			SessionType: booking.SessionType(req.SessionType),
		})
		if err != nil {
			handleBookError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, BookSlotResponse{Success: true, Status: string(status)})
	}
}

func loginHandler(svc *booking.Service, sessions *auth.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		ok, err := svc.VerifyPassword(r.Context(), req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "password is incorrect")
			return
		}

		token, err := sessions.Issue(time.Now())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}

func handleBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", "this slot is no longer available")
	case errors.Is(err, booking.ErrInvalidSession):
		writeError(w, http.StatusBadRequest, "invalid_session_type", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
