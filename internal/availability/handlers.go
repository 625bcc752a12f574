// ABOUTME: HTTP handlers for the availability API.
// ABOUTME: Implements slot listing, creation, and deletion with change notices.

package availability

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

// NewHandlers wires the availability routes. hub may be nil when no stream
// is attached.
func NewHandlers(s *store.Store, hub *stream.Hub) *Handlers {
	return &Handlers{store: s, hub: hub}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/v1/availability", func(r chi.Router) {
		r.Get("/", h.listSlots)
		r.Post("/", h.createSlot)
		r.Delete("/{slotId}", h.deleteSlot)
	})
}

func (h *Handlers) listSlots(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	member := r.URL.Query().Get("member")

	if start == "" {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "missing_field", "start is required", "start")
		return
	}
	if end == "" {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "missing_field", "end is required", "end")
		return
	}

	slots, err := h.store.ListSlots(start, end, member)
	if err != nil {
		rotaerrors.WriteError(w, http.StatusInternalServerError, "internal", "failed to list slots")
		return
	}
	if slots == nil {
		slots = []schedule.Slot{}
	}

	rotaerrors.WriteJSON(w, map[string]any{"items": slots})
}

func (h *Handlers) createSlot(w http.ResponseWriter, r *http.Request) {
	var slot schedule.Slot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		rotaerrors.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	if slot.MemberName == "" {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "missing_field", "member_name is required", "member_name")
		return
	}
	status, err := schedule.ParseStatus(string(slot.Status))
	if err != nil {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "invalid_status", "status must be good, ok, or bad", "status")
		return
	}
	slot.Status = status
	if _, err := slot.Start(); err != nil {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "invalid_time", "start_time must be RFC3339", "start_time")
		return
	}
	if _, err := slot.End(); err != nil {
		rotaerrors.WriteErrorWithField(w, http.StatusBadRequest, "invalid_time", "end_time must be RFC3339", "end_time")
		return
	}

	created, err := h.store.CreateSlot(&slot)
	if err != nil {
		rotaerrors.WriteError(w, http.StatusInternalServerError, "internal", "failed to create slot")
		return
	}

	h.hub.Broadcast(stream.NewNotice(stream.NoticeAvailabilityChanged, created.ID))
	rotaerrors.WriteJSONStatus(w, http.StatusCreated, created)
}

func (h *Handlers) deleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "slotId")

	if err := h.store.DeleteSlot(slotID); err != nil {
		if err == store.ErrNotFound {
			rotaerrors.WriteError(w, http.StatusNotFound, "not_found", "slot not found")
			return
		}
		rotaerrors.WriteError(w, http.StatusInternalServerError, "internal", "failed to delete slot")
		return
	}

	h.hub.Broadcast(stream.NewNotice(stream.NoticeAvailabilityChanged, slotID))
	w.WriteHeader(http.StatusNoContent)
}
