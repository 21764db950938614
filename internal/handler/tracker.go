package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/service"
)

// TrackerHandler serves the signed-in user's application trackers, their
// documents and the email log. Records of other users are reported as not
// found.
type TrackerHandler struct {
	trackers *service.TrackerService
	logger   *slog.Logger
}

func NewTrackerHandler(trackers *service.TrackerService, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{trackers: trackers, logger: logger}
}

// HandleList handles GET /api/applications (?status=&sort=recent&page=).
// The default order is priority, then deadline.
func (h *TrackerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.trackers.List(r.Context(), currentUser(r), service.TrackerQuery{
		Status: model.ApplicationStatus(query(r, "status")),
		Recent: query(r, "sort") == "recent",
		Page:   pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /api/applications. New trackers always start
// in planning, whatever status the body names.
func (h *TrackerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.TrackerInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	t, err := h.trackers.Create(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// HandleGet handles GET /api/applications/{id}.
func (h *TrackerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.trackers.Detail(r.Context(), currentUser(r), urlParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleUpdate handles PUT /api/applications/{id}.
func (h *TrackerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.TrackerInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	t, err := h.trackers.Update(r.Context(), currentUser(r), urlParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleDelete handles DELETE /api/applications/{id}.
func (h *TrackerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.trackers.Delete(r.Context(), currentUser(r), urlParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddDocument handles POST /api/applications/{id}/documents.
func (h *TrackerHandler) HandleAddDocument(w http.ResponseWriter, r *http.Request) {
	var in service.DocumentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	d, err := h.trackers.AddDocument(r.Context(), currentUser(r), urlParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// HandleUpdateDocument handles PUT /api/applications/{id}/documents/{docID}.
func (h *TrackerHandler) HandleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	var in service.DocumentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	d, err := h.trackers.UpdateDocument(r.Context(), currentUser(r), urlParam(r, "id"), urlParam(r, "docID"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleDeleteDocument handles DELETE /api/applications/{id}/documents/{docID}.
func (h *TrackerHandler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.trackers.DeleteDocument(r.Context(), currentUser(r), urlParam(r, "id"), urlParam(r, "docID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEmails handles GET /api/emails (?application=<tracker id>&page=).
func (h *TrackerHandler) HandleEmails(w http.ResponseWriter, r *http.Request) {
	p, err := h.trackers.Emails(r.Context(), currentUser(r), service.EmailQuery{
		TrackerID: query(r, "application"),
		Page:      pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleLogEmail handles POST /api/emails.
func (h *TrackerHandler) HandleLogEmail(w http.ResponseWriter, r *http.Request) {
	var in service.EmailInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	e, err := h.trackers.LogEmail(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// HandleRecordResponse handles PUT /api/emails/{id}/response.
func (h *TrackerHandler) HandleRecordResponse(w http.ResponseWriter, r *http.Request) {
	var in service.ResponseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	e, err := h.trackers.RecordResponse(r.Context(), currentUser(r), urlParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
