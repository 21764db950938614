package middleware

import (
	"net/http"

	"github.com/sakif/applyhelp/internal/i18n"
)

// Locale negotiates the response language from ?lang= and Accept-Language,
// stores it in the request context and echoes it in Content-Language.
func Locale(fallback i18n.Locale) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"), fallback)
			w.Header().Set("Content-Language", string(loc))
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), loc)))
		})
	}
}
