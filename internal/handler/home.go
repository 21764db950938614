package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/forms"
	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/service"
)

// HomeHandler serves the public, content-free endpoints: landing page
// counters, form schemas and enum choices.
type HomeHandler struct {
	home   *service.HomeService
	logger *slog.Logger
}

func NewHomeHandler(home *service.HomeService, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{home: home, logger: logger}
}

// HandleHome handles GET /api/home.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	stats, err := h.home.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleForm handles GET /api/forms/{name}.
func (h *HomeHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	form, ok := forms.Get(i18n.FromContext(r.Context()), name)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "form not found with id " + name})
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// HandleEnum handles GET /api/enums/{group}: every key of the group with
// its label in the request locale.
func (h *HomeHandler) HandleEnum(w http.ResponseWriter, r *http.Request) {
	group := urlParam(r, "group")
	choices := forms.Choices(i18n.FromContext(r.Context()), group)
	if choices == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "enum not found with id " + group})
		return
	}
	writeJSON(w, http.StatusOK, choices)
}

// HandleHealth handles GET /healthz.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
