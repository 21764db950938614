package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/service"
)

// CatalogHandler serves the destinations catalog: countries, universities,
// programs and scholarships. List endpoints take ?search= and ?page= plus
// per-type filters; an unrecognized filter value matches nothing.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// HandleOverview handles GET /api/destinations.
func (h *CatalogHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleCountries handles GET /api/destinations/countries.
func (h *CatalogHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Countries(r.Context(), service.CountryQuery{
		Search: query(r, "search"),
		Page:   pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCountry handles GET /api/destinations/countries/{code}.
func (h *CatalogHandler) HandleCountry(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.Country(r.Context(), urlParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleUniversities handles GET /api/destinations/universities
// (?country=<code>&type=).
func (h *CatalogHandler) HandleUniversities(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Universities(r.Context(), service.UniversityQuery{
		Search:  query(r, "search"),
		Country: query(r, "country"),
		Type:    model.UniversityType(query(r, "type")),
		Page:    pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUniversity handles GET /api/destinations/universities/{id}.
func (h *CatalogHandler) HandleUniversity(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.University(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandlePrograms handles GET /api/destinations/programs (?level=&field=).
func (h *CatalogHandler) HandlePrograms(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Programs(r.Context(), service.ProgramQuery{
		Search: query(r, "search"),
		Level:  model.ProgramLevel(query(r, "level")),
		Field:  query(r, "field"),
		Page:   pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleProgram handles GET /api/destinations/programs/{id}.
func (h *CatalogHandler) HandleProgram(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.Program(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleScholarships handles GET /api/destinations/scholarships
// (?type=&kurdish=true).
func (h *CatalogHandler) HandleScholarships(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Scholarships(r.Context(), service.ScholarshipQuery{
		Search:      query(r, "search"),
		Type:        model.ScholarshipType(query(r, "type")),
		KurdishOnly: boolParam(r, "kurdish"),
		Page:        pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCompare handles GET /api/destinations/compare
// (?countries=a,b&universities=c,d).
func (h *CatalogHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.Compare(r.Context(), listParam(r, "countries"), listParam(r, "universities"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleQuiz handles GET /api/destinations/quiz.
func (h *CatalogHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Quiz(r.Context()))
}
