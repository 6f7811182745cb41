package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sojasapi/internal/domain/entities"
)

// listEvents serves GET /events. cached=true reads local storage only; otherwise
// the requested remote page is synced first. Unparsable parameters use their defaults.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cached, _ := strconv.ParseBool(query.Get("cached"))
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	var views []entities.EventView
	if cached {
		views, err = h.eventUseCase.ListCached(r.Context())
	} else {
		views, err = h.eventUseCase.ListFresh(r.Context(), page)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]eventResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toEventResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) participate(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventIDParam(w, r)
	if !ok {
		return
	}
	user := userFromContext(r.Context())

	if err := h.participantUseCase.Participate(r.Context(), eventID, user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: h.message(r, "participate_ok", nil)})
}

func (h *Handler) stopParticipating(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventIDParam(w, r)
	if !ok {
		return
	}
	user := userFromContext(r.Context())

	if err := h.participantUseCase.StopParticipating(r.Context(), eventID, user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: h.message(r, "participate_stopped", nil)})
}

func (h *Handler) eventIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "eventId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeBadRequest(w, r, "eventId must be a positive integer")
		return 0, false
	}
	return id, true
}
