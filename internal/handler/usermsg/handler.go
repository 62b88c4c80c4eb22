// Package usermsg handles the user-driven conversation variant: one customer
// message in, one agent reply and one terminator check out, synchronously.
package usermsg

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKovacik/Simulator2/internal/service/simulator"
	"github.com/MKovacik/Simulator2/pkg/utils"
)

// Handler serves POST /user_message.
type Handler struct {
	controller *simulator.Controller
}

// New creates the user-message handler.
func New(controller *simulator.Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes mounts the user-message endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/user_message", h.handleUserMessage)
}

func (h *Handler) handleUserMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "No session ID provided")
		return
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "No message provided.")
		return
	}

	content, complete, err := h.controller.RespondToUser(r.Context(), payload.SessionID, message)
	if err != nil {
		log.Printf("[user_message] session=%s failed: %v", payload.SessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"content":               content,
		"conversation_complete": complete,
	})
}
