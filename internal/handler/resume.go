package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/service"
)

// ResumeHandler serves the resume builder. Section routes share one handler
// pair; {section} picks the item type the body decodes into.
type ResumeHandler struct {
	resumes *service.ResumeService
	logger  *slog.Logger
}

func NewResumeHandler(resumes *service.ResumeService, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, logger: logger}
}

// HandleList handles GET /api/resumes.
func (h *ResumeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.resumes.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleCreate handles POST /api/resumes.
func (h *ResumeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CreateResumeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.resumes.Create(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// HandleGet handles GET /api/resumes/{id}: the resume with every section.
func (h *ResumeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.resumes.Detail(r.Context(), currentUser(r), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleUpdate handles PUT /api/resumes/{id}.
func (h *ResumeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateResumeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.resumes.Update(r.Context(), currentUser(r), urlParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleDelete handles DELETE /api/resumes/{id}.
func (h *ResumeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.resumes.Delete(r.Context(), currentUser(r), urlParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTemplates handles GET /api/resumes/templates.
func (h *ResumeHandler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := h.resumes.CVTemplates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleBuilder handles GET /api/resumes/builder (?resume=<id>).
func (h *ResumeHandler) HandleBuilder(w http.ResponseWriter, r *http.Request) {
	v, err := h.resumes.Builder(r.Context(), currentUser(r), query(r, "resume"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleAddItem handles POST /api/resumes/{id}/{section}.
func (h *ResumeHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	h.saveItem(w, r, "", http.StatusCreated)
}

// HandleUpdateItem handles PUT /api/resumes/{id}/{section}/{itemID}.
func (h *ResumeHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	h.saveItem(w, r, urlParam(r, "itemID"), http.StatusOK)
}

// HandleDeleteItem handles DELETE /api/resumes/{id}/{section}/{itemID}.
func (h *ResumeHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	section := model.ResumeSection(urlParam(r, "section"))
	err := h.resumes.DeleteSectionItem(r.Context(), currentUser(r), urlParam(r, "id"), section, urlParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResumeHandler) saveItem(w http.ResponseWriter, r *http.Request, itemID string, status int) {
	userID, resumeID := currentUser(r), urlParam(r, "id")
	s := h.resumes

	switch section := model.ResumeSection(urlParam(r, "section")); section {
	case model.SectionEducation:
		saveSection(w, r, status, func(ctx context.Context, e model.Education) (*model.Education, error) {
			return s.SaveEducation(ctx, userID, resumeID, itemID, e)
		})
	case model.SectionExperience:
		saveSection(w, r, status, func(ctx context.Context, e model.Experience) (*model.Experience, error) {
			return s.SaveExperience(ctx, userID, resumeID, itemID, e)
		})
	case model.SectionSkills:
		saveSection(w, r, status, func(ctx context.Context, sk model.Skill) (*model.Skill, error) {
			return s.SaveSkill(ctx, userID, resumeID, itemID, sk)
		})
	case model.SectionPublications:
		saveSection(w, r, status, func(ctx context.Context, p model.Publication) (*model.Publication, error) {
			return s.SavePublication(ctx, userID, resumeID, itemID, p)
		})
	case model.SectionAwards:
		saveSection(w, r, status, func(ctx context.Context, a model.Award) (*model.Award, error) {
			return s.SaveAward(ctx, userID, resumeID, itemID, a)
		})
	default:
		writeError(w, apperror.NotFound("section", string(section)))
	}
}

// saveSection decodes the body as a T and hands it to save.
func saveSection[T any](w http.ResponseWriter, r *http.Request, status int,
	save func(context.Context, T) (*T, error),
) {
	var item T
	if err := decodeJSON(w, r, &item); err != nil {
		writeError(w, err)
		return
	}
	saved, err := save(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, saved)
}
