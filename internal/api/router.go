package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/annerobin/therapy-booking/internal/auth"
	"github.com/annerobin/therapy-booking/internal/booking"
)

type RouterConfig struct {
	Service  *booking.Service
	Sessions *auth.Sessions
	PgPool   *pgxpool.Pool // nil with the local backend
	Redis    *redis.Client // nil when Redis is not configured
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public booking surface
	r.Get("/slots", listSlotsHandler(cfg.Service))
	r.Post("/slots/{id}/book", bookSlotHandler(cfg.Service))

	// Admin surface; everything past login requires a session token
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", loginHandler(cfg.Service, cfg.Sessions))

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Sessions))

			r.Get("/slots", adminListSlotsHandler(cfg.Service))
			r.Post("/slots", createSlotHandler(cfg.Service))
			r.Patch("/slots/{id}/status", updateStatusHandler(cfg.Service))
			r.Post("/slots/{id}/reschedule", rescheduleSlotHandler(cfg.Service))
			r.Put("/slots/{id}/summary", updateSummaryHandler(cfg.Service))
			r.Post("/slots/{id}/summarize", summarizeSlotHandler(cfg.Service))
			r.Put("/slots/{id}/note", updatePrivateNoteHandler(cfg.Service))
			r.Post("/slots/{id}/reply", draftReplyHandler(cfg.Service))
			r.Post("/slots/{id}/reminder", sendReminderHandler(cfg.Service))
			r.Post("/slots/{id}/invoice", sendInvoiceHandler(cfg.Service))
			r.Delete("/slots/{id}", deleteSlotHandler(cfg.Service))

			r.Get("/stats", statsHandler(cfg.Service))
			r.Get("/settings", getSettingsHandler(cfg.Service))
			r.Put("/settings", saveSettingsHandler(cfg.Service))
			r.Get("/activity", activityHandler(cfg.Service))
			r.Post("/seed", seedHandler(cfg.Service))
		})
	})

	return r
}
