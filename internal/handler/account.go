package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/applyhelp/internal/service"
)

// AccountHandler serves the signed-in user's account, profile and
// dashboard. Every route is behind auth.RequireAuth.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// HandleDashboard handles GET /api/dashboard.
func (h *AccountHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.accounts.Dashboard(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleGetAccount handles GET /api/account.
func (h *AccountHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.User(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateAccount handles PUT /api/account.
func (h *AccountHandler) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var in service.AccountInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.accounts.UpdateAccount(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleDialects handles GET /api/dialects.
func (h *AccountHandler) HandleDialects(w http.ResponseWriter, r *http.Request) {
	dialects, err := h.accounts.Dialects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dialects)
}

type dialectsRequest struct {
	Codes []string `json:"codes"`
}

// HandleSetDialects handles PUT /api/account/dialects with {"codes": [...]}.
// The list replaces the user's current dialects; one unknown code rejects
// the whole request.
func (h *AccountHandler) HandleSetDialects(w http.ResponseWriter, r *http.Request) {
	var in dialectsRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	dialects, err := h.accounts.SetDialects(r.Context(), currentUser(r), in.Codes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dialects)
}

// HandleGetProfile handles GET /api/profile. The first visit creates the
// profile.
func (h *AccountHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.accounts.Profile(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUpdateProfile handles PUT /api/profile.
func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.accounts.UpdateProfile(r.Context(), currentUser(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
