// ABOUTME: HTTP handlers for the calendar events API.
// ABOUTME: Implements event listing, retrieval, and creation with change notices.

package events

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	rotaerrors "github.com/2389/rota/internal/errors"
	"github.com/2389/rota/internal/schedule"
	"github.com/2389/rota/internal/store"
	"github.com/2389/rota/internal/stream"
)

type Handlers struct {
	store *store.Store
	hub   *stream.Hub
}

// NewHandlers wires the events routes. hub may be nil when no stream is
// attached.
func NewHandlers(s *store.Store, hub *stream.Hub) *Handlers {
	return &Handlers{store: s, hub: hub}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/v1/events", func(r chi.Router) {
		r.Get("/", h.listEvents)
		r.Post("/", h.createEvent)
		r.Get("/{eventId}", h.getEvent)
	})
}

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	if start == "" {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "missing_field", "start is required", "start")
		return
	}
	if end == "" {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "missing_field", "end is required", "end")
		return
	}

	events, err := h.store.ListEvents(start, end)
	if err != nil {
		rotaerrors.WriteError(w, http.StatusInternalServerError, "internal", "failed to list events")
		return
	}
	if events == nil {
		events = []schedule.Event{}
	}

	rotaerrors.WriteJSON(w, map[string]any{"items": events})
}

func (h *Handlers) getEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	evt, err := h.store.GetEvent(eventID)
	if err != nil {
		if err == store.ErrNotFound {
			rotaerrors.WriteError(w, http.StatusNotFound, "not_found", "event not found")
			return
		}
		rotaerrors.WriteError(w, http.StatusInternalServerError, "internal", "failed to get event")
		return
	}

	rotaerrors.WriteJSON(w, evt)
}

func (h *Handlers) createEvent(w http.ResponseWriter, r *http.Request) {
	var evt schedule.Event
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		rotaerrors.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	if evt.Summary == "" {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "missing_field", "summary is required", "summary")
		return
	}
	if _, err := evt.Start(); err != nil {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "invalid_time", "start_time must be RFC3339", "start_time")
		return
	}

	created, err := h.store.CreateEvent(&evt)
	if err != nil {
		rotaerrors.WriteError(w, http.StatusInternalServerError, "internal", "failed to create event")
		return
	}

	h.hub.Broadcast(stream.NewNotice(stream.NoticeEventChanged, created.ID))
	rotaerrors.WriteJSONStatus(w, http.StatusCreated, created)
}
