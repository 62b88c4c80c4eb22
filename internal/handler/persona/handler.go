// Package persona exposes the customer catalog to the frontend.
package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	personaModel "github.com/MKovacik/Simulator2/internal/model/persona"
	"github.com/MKovacik/Simulator2/pkg/utils"
)

// Handler serves persona catalog reads.
type Handler struct {
	store personaModel.Store
}

// New creates the persona handler.
func New(store personaModel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}
