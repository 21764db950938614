package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/service"
)

// ResourceHandler serves the guide library.
type ResourceHandler struct {
	resources *service.ResourceService
	logger    *slog.Logger
}

func NewResourceHandler(resources *service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{resources: resources, logger: logger}
}

// HandleHome handles GET /api/resources.
func (h *ResourceHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	home, err := h.resources.Home(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

// HandleGuides handles GET /api/resources/guides
// (?search=&category=&type=&difficulty=&country=&page=).
func (h *ResourceHandler) HandleGuides(w http.ResponseWriter, r *http.Request) {
	p, err := h.resources.Guides(r.Context(), service.GuideQuery{
		Search:     query(r, "search"),
		CategoryID: query(r, "category"),
		Type:       model.GuideType(query(r, "type")),
		Difficulty: model.Difficulty(query(r, "difficulty")),
		CountryID:  query(r, "country"),
		Page:       pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleGuide handles GET /api/resources/guides/{slug}. Every successful
// fetch counts one view.
func (h *ResourceHandler) HandleGuide(w http.ResponseWriter, r *http.Request) {
	d, err := h.resources.Guide(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleCategoryGuides handles GET /api/resources/categories/{id}/guides.
func (h *ResourceHandler) HandleCategoryGuides(w http.ResponseWriter, r *http.Request) {
	c, err := h.resources.CategoryGuides(r.Context(), urlParam(r, "id"), pageParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type helpfulResponse struct {
	HelpfulVotes int64 `json:"helpfulVotes"`
}

// HandleHelpful handles POST /api/resources/guides/{slug}/helpful.
func (h *ResourceHandler) HandleHelpful(w http.ResponseWriter, r *http.Request) {
	n, err := h.resources.MarkHelpful(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, helpfulResponse{HelpfulVotes: n})
}
