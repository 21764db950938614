// Package i18n holds the application's locales, the enum label catalog and
// per-record translation overrides.
//
// Three locales are supported: English (the source language), Central
// Kurdish / Sorani (ckb) and Northern Kurdish / Kurmanji (kmr). Only enum
// keys are stored in the database; everything a user reads is looked up here
// at render time.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

type Locale string

const (
	English  Locale = "en"
	Sorani   Locale = "ckb"
	Kurmanji Locale = "kmr"
)

// Supported lists the locales in matcher preference order. English first:
// it is what the matcher falls back to.
var Supported = []Locale{English, Sorani, Kurmanji}

var (
	supportedTags = []language.Tag{
		language.English,
		language.MustParse("ckb"),
		language.MustParse("kmr"),
	}
	matcher = language.NewMatcher(supportedTags)
)

// Parse returns the supported locale named by s (case-insensitive, region
// subtags ignored: "ckb-IQ" is Sorani).
func Parse(s string) (Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if _, err := language.Parse(s); err != nil {
		return "", false
	}
	primary, _, _ := strings.Cut(strings.ToLower(strings.ReplaceAll(s, "_", "-")), "-")
	for _, loc := range Supported {
		if primary == string(loc) {
			return loc, true
		}
	}
	return "", false
}

// Negotiate picks the response locale.
//
// An explicit choice (the ?lang= query parameter) wins when it names a
// supported locale. Otherwise the Accept-Language header is matched against
// the supported set; when nothing matches, fallback is used.
func Negotiate(explicit, acceptLanguage string, fallback Locale) Locale {
	if loc, ok := Parse(explicit); ok {
		return loc
	}
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported[index]
}

type ctxKey struct{}

// WithLocale stores the request locale in ctx.
func WithLocale(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, loc)
}

// FromContext returns the locale stored by WithLocale, or English.
func FromContext(ctx context.Context) Locale {
	if loc, ok := ctx.Value(ctxKey{}).(Locale); ok {
		return loc
	}
	return English
}
