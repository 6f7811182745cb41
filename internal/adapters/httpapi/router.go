package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const serviceName = "sojasapi"

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewRouter returns the chi router with default middleware and every API route.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: serviceName})
	})
	r.Get("/", h.root)

	r.Get("/events", h.listEvents)
	r.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Post("/events/{eventId}/participate", h.participate)
		r.Delete("/events/{eventId}/participate", h.stopParticipating)
	})

	r.Post("/login", h.login)

	r.Get("/users", h.listUsers)
	r.Get("/users/{id}", h.getUser)

	return r
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: h.message(r, "root_up", nil)})
}
