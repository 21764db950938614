package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

const (
	featuredGuides = 6
	recentGuides   = 8
	relatedGuides  = 4
)

// ResourceService serves the guide library. Only published guides and
// active categories are ever visible.
type ResourceService struct {
	resources repository.ResourceRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewResourceService(resources repository.ResourceRepository, m *metrics.Metrics, logger *slog.Logger) *ResourceService {
	return &ResourceService{resources: resources, metrics: m, logger: logger}
}

type ResourcesHome struct {
	Featured   []model.Guide    `json:"featuredGuides"`
	Recent     []model.Guide    `json:"recentGuides"`
	Categories []model.Category `json:"categories"`
}

func (s *ResourceService) Home(ctx context.Context) (*ResourcesHome, error) {
	var (
		h   ResourcesHome
		err error
	)
	if h.Featured, _, err = s.resources.ListGuides(ctx, repository.GuideFilter{
		FeaturedOnly: true,
		ListOptions:  repository.ListOptions{Limit: featuredGuides},
	}); err != nil {
		return nil, fmt.Errorf("resources home: %w", err)
	}
	if h.Recent, _, err = s.resources.ListGuides(ctx, repository.GuideFilter{
		Order:       repository.OrderNewest,
		ListOptions: repository.ListOptions{Limit: recentGuides},
	}); err != nil {
		return nil, fmt.Errorf("resources home: %w", err)
	}
	if h.Categories, err = s.resources.ListTopCategories(ctx); err != nil {
		return nil, fmt.Errorf("resources home: %w", err)
	}

	h.Featured = nonNil(h.Featured)
	h.Recent = nonNil(h.Recent)
	h.Categories = nonNil(h.Categories)
	localizeAll(ctx, h.Featured)
	localizeAll(ctx, h.Recent)
	localizeAll(ctx, h.Categories)
	return &h, nil
}

type GuideQuery struct {
	Search     string
	CategoryID string
	Type       model.GuideType
	Difficulty model.Difficulty
	CountryID  string
	Page       int
}

func (s *ResourceService) Guides(ctx context.Context, q GuideQuery) (model.Page[model.Guide], error) {
	page, opts := pageOptions(q.Page, GuidesPageSize)
	items, total, err := s.resources.ListGuides(ctx, repository.GuideFilter{
		Search:      strings.TrimSpace(q.Search),
		CategoryID:  strings.TrimSpace(q.CategoryID),
		Type:        q.Type,
		Difficulty:  q.Difficulty,
		CountryID:   strings.TrimSpace(q.CountryID),
		ListOptions: opts,
	})
	if err != nil {
		return model.Page[model.Guide]{}, fmt.Errorf("listing guides: %w", err)
	}
	localizeAll(ctx, items)
	return model.NewPage(items, page, GuidesPageSize, total), nil
}

type GuideDetail struct {
	Guide   *model.Guide  `json:"guide"`
	Related []model.Guide `json:"relatedGuides"`
}

// Guide counts a view and returns the guide with up to four related guides
// of the same type (and category, when it has one). Every call counts.
func (s *ResourceService) Guide(ctx context.Context, slug string) (*GuideDetail, error) {
	g, err := s.resources.IncrementViews(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.metrics.GuideViewed()

	f := repository.GuideFilter{
		Type:        g.GuideType,
		ExcludeID:   g.ID,
		ListOptions: repository.ListOptions{Limit: relatedGuides},
	}
	if g.CategoryID != nil {
		f.CategoryID = *g.CategoryID
	}
	related, _, err := s.resources.ListGuides(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("related guides of %s: %w", slug, err)
	}

	related = nonNil(related)
	localize(ctx, g)
	localizeAll(ctx, related)
	return &GuideDetail{Guide: g, Related: related}, nil
}

type CategoryGuides struct {
	Category *model.Category         `json:"category"`
	Guides   model.Page[model.Guide] `json:"guides"`
}

// CategoryGuides lists a category's guides, newest first. Inactive and
// unknown categories are not found.
func (s *ResourceService) CategoryGuides(ctx context.Context, categoryID string, pageNum int) (*CategoryGuides, error) {
	c, err := s.resources.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	page, opts := pageOptions(pageNum, CategoryGuidesPageSize)
	items, total, err := s.resources.ListGuides(ctx, repository.GuideFilter{
		CategoryID:  c.ID,
		Order:       repository.OrderNewest,
		ListOptions: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("guides of category %s: %w", categoryID, err)
	}

	localize(ctx, c)
	localizeAll(ctx, items)
	return &CategoryGuides{Category: c, Guides: model.NewPage(items, page, CategoryGuidesPageSize, total)}, nil
}

// MarkHelpful adds one helpful vote and returns the new total.
func (s *ResourceService) MarkHelpful(ctx context.Context, slug string) (int64, error) {
	g, err := s.resources.IncrementHelpful(ctx, slug)
	if err != nil {
		return 0, err
	}
	s.metrics.HelpfulVoted()
	return g.HelpfulVotes, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
