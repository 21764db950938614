package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/service"
)

// ComposerHandler serves email templates, communication tips and the
// communications dashboard.
type ComposerHandler struct {
	composer *service.ComposerService
	logger   *slog.Logger
}

func NewComposerHandler(composer *service.ComposerService, logger *slog.Logger) *ComposerHandler {
	return &ComposerHandler{composer: composer, logger: logger}
}

// HandleDashboard handles GET /api/communications.
func (h *ComposerHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.composer.Dashboard(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleTemplates handles GET /api/communications/templates (?type=&formality=).
func (h *ComposerHandler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := h.composer.Templates(r.Context(), service.TemplateQuery{
		Type:      model.TemplateType(query(r, "type")),
		Formality: model.Formality(query(r, "formality")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleTemplate handles GET /api/communications/templates/{id}. Signed-in
// users see their own name in the sample variables.
func (h *ComposerHandler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	d, err := h.composer.Template(r.Context(), urlParam(r, "id"), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleCompose handles GET /api/communications/compose (?template=).
func (h *ComposerHandler) HandleCompose(w http.ResponseWriter, r *http.Request) {
	v, err := h.composer.Compose(r.Context(), query(r, "template"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleTips handles GET /api/communications/tips (?context=).
func (h *ComposerHandler) HandleTips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.composer.Tips(r.Context(), model.TipContext(query(r, "context")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tips)
}
