package handler

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	personaHandler "github.com/MKovacik/Simulator2/internal/handler/persona"
	"github.com/MKovacik/Simulator2/internal/handler/simulate"
	"github.com/MKovacik/Simulator2/internal/handler/usermsg"
	middlewarePkg "github.com/MKovacik/Simulator2/internal/middleware"
	personaModel "github.com/MKovacik/Simulator2/internal/model/persona"
	"github.com/MKovacik/Simulator2/internal/service/simulator"
	"github.com/MKovacik/Simulator2/pkg/utils"
)

//go:embed web/index.html
var webFS embed.FS

// NewRouter wires HTTP routes to the simulator core.
func NewRouter(personas personaModel.Store, controller *simulator.Controller) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", handleIndex)
	r.Get("/healthz", handleHealthz)

	personaHandler.New(personas).RegisterRoutes(r)
	simulate.New(controller).RegisterRoutes(r)
	usermsg.New(controller).RegisterRoutes(r)

	return r
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "index page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
