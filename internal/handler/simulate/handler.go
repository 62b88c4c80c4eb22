// Package simulate exposes the SSE endpoint that runs a full simulated
// conversation for a session.
package simulate

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKovacik/Simulator2/internal/service/simulator"
	"github.com/MKovacik/Simulator2/pkg/utils"
)

// Handler streams simulated conversations over Server-Sent Events.
type Handler struct {
	controller *simulator.Controller
}

// New creates the simulate handler.
func New(controller *simulator.Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes mounts the simulate endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/simulate", h.handleSimulate)
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		utils.SendSSEChunk(w, flusher, simulator.Event{Error: "No session ID provided"})
		return
	}

	// simulator_mode=0 means the client drives the conversation through
	// POST /user_message instead; the stream has nothing to produce.
	if r.URL.Query().Get("simulator_mode") == "0" {
		utils.SendSSEChunk(w, flusher, simulator.Event{End: true})
		return
	}

	log.Printf("[sim] starting simulation for session=%s", sessionID)

	emit := func(ev simulator.Event) {
		utils.SendSSEChunk(w, flusher, ev)
	}

	if err := h.controller.Simulate(r.Context(), sessionID, emit); err != nil {
		log.Printf("[sim] session=%s failed: %v", sessionID, err)
		utils.SendSSEChunk(w, flusher, simulator.Event{Error: err.Error()})
	}
}
