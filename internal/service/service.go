// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services take repository interfaces, never *sqlite.DB, so tests run them
// against in-memory fakes. They know nothing about HTTP: errors come back as
// apperror values and the handler picks the status code.
//
// LOCALIZATION:
// Catalog, composer and resource records carry per-locale overrides. Every
// service method that returns such records localizes them to the locale
// stored in ctx (see i18n.WithLocale) before returning.
package service

import (
	"context"

	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

// Fixed page sizes of the paginated listings.
const (
	CountriesPageSize        = 12
	UniversitiesPageSize     = 15
	ProgramsPageSize         = 20
	ScholarshipsPageSize     = 15
	GuidesPageSize           = 12
	CategoryGuidesPageSize   = 15
	TrackersPageSize         = 10
	EmailsPageSize           = 20
	recentItems              = 5
	communicationTipsPreview = 3
)

// pageOptions turns a 1-based page number into a limit/offset pair. Pages
// below 1 are treated as 1.
func pageOptions(page, size int) (int, repository.ListOptions) {
	if page < 1 {
		page = 1
	}
	return page, repository.ListOptions{Limit: size, Offset: model.Offset(page, size)}
}

type localizer interface {
	Localize(loc i18n.Locale)
}

// localizeAll localizes every element of items in place.
func localizeAll[T any, P interface {
	*T
	localizer
}](ctx context.Context, items []T) {
	loc := i18n.FromContext(ctx)
	for i := range items {
		P(&items[i]).Localize(loc)
	}
}

func localize(ctx context.Context, v localizer) {
	v.Localize(i18n.FromContext(ctx))
}

// localizeTrackers localizes the university embedded in each tracker.
func localizeTrackers(ctx context.Context, items []model.Tracker) {
	loc := i18n.FromContext(ctx)
	for i := range items {
		if items[i].University != nil {
			items[i].University.Localize(loc)
		}
	}
}
