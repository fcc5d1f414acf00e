package handler

import (
	"net/http"

	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/notify/sse"
)

// EventsHandler streams a player's notifications over SSE
type EventsHandler struct {
	hubManager *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{hubManager: hubManager}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	hub := h.hubManager.GetOrCreateHub(ident.ID)
	sse.ServeSSE(w, r, hub, ident.ID)
}
