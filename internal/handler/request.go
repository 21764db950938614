package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/auth"
)

// maxBodyBytes caps JSON request bodies. Resume text fields are the largest
// thing anyone sends.
const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. A malformed, oversized or
// empty body is a validation error on "body".
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("body", "request body is required")
		case errors.As(err, &maxErr):
			return apperror.ValidationFailed("body", "request body is too large")
		default:
			return apperror.ValidationFailed("body", "invalid JSON body")
		}
	}
	return nil
}

// pageParam reads ?page=. Missing, malformed and non-positive values all mean
// the first page.
func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// boolParam treats "1", "true", "on" and "yes" as true.
func boolParam(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// listParam collects repeated and comma-separated values of name:
// ?countries=a&countries=b,c gives [a b c].
func listParam(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// currentUser returns the authenticated user ID. On routes behind
// auth.RequireAuth it is always set; anywhere else "" means anonymous.
func currentUser(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}
