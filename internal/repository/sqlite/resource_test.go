package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

func seedGuide(t *testing.T, db *DB, slug, title string, mutate ...func(*model.Guide)) *model.Guide {
	t.Helper()
	g := &model.Guide{
		Title:                title,
		Slug:                 slug,
		GuideType:            model.GuideProcess,
		DifficultyLevel:      model.DifficultyBeginner,
		EstimatedReadingTime: 10,
		IsPublished:          true,
	}
	for _, m := range mutate {
		m(g)
	}
	if err := db.Resources().UpsertGuide(context.Background(), g); err != nil {
		t.Fatalf("seeding guide %s: %v", slug, err)
	}
	return g
}

// =========================================================================
// VIEW COUNTER TESTS
// =========================================================================

func TestIncrementViews_Sequential(t *testing.T) {
	db := newTestDB(t)
	seedGuide(t, db, "visa-basics", "Visa basics")

	const n = 7
	var last *model.Guide
	for range n {
		g, err := db.Resources().IncrementViews(context.Background(), "visa-basics")
		if err != nil {
			t.Fatalf("IncrementViews() error = %v", err)
		}
		last = g
	}
	if last.Views != n {
		t.Errorf("Views = %d after %d fetches, want %d", last.Views, n, n)
	}
}

func TestIncrementViews_ConcurrentNoLostUpdates(t *testing.T) {
	db := newFileTestDB(t)
	seedGuide(t, db, "hot", "Hot guide")

	const workers, perWorker = 8, 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				if _, err := db.Resources().IncrementViews(context.Background(), "hot"); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("IncrementViews() error = %v", err)
	}

	var views int64
	db.conn.QueryRow(`SELECT views FROM guides WHERE slug = 'hot'`).Scan(&views)
	if views != workers*perWorker {
		t.Errorf("views = %d, want %d", views, workers*perWorker)
	}
}

func TestIncrementViews_UnpublishedIsNotFound(t *testing.T) {
	db := newTestDB(t)
	seedGuide(t, db, "draft", "Draft", func(g *model.Guide) { g.IsPublished = false })

	_, err := db.Resources().IncrementViews(context.Background(), "draft")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("IncrementViews(draft) error = %v, want ErrNotFound", err)
	}

	var views int64
	db.conn.QueryRow(`SELECT views FROM guides WHERE slug = 'draft'`).Scan(&views)
	if views != 0 {
		t.Errorf("unpublished guide views = %d, want 0", views)
	}
}

func TestIncrementHelpful(t *testing.T) {
	db := newTestDB(t)
	seedGuide(t, db, "useful", "Useful")

	db.Resources().IncrementHelpful(context.Background(), "useful")
	g, err := db.Resources().IncrementHelpful(context.Background(), "useful")
	if err != nil {
		t.Fatalf("IncrementHelpful() error = %v", err)
	}
	if g.HelpfulVotes != 2 || g.Views != 0 {
		t.Errorf("helpful=%d views=%d, want 2 and 0", g.HelpfulVotes, g.Views)
	}
}

func TestUpsertGuide_KeepsCounters(t *testing.T) {
	db := newTestDB(t)
	seedGuide(t, db, "kept", "Kept")
	db.Resources().IncrementViews(context.Background(), "kept")

	seedGuide(t, db, "kept", "Kept (revised)")

	g, _ := db.Resources().IncrementViews(context.Background(), "kept")
	if g.Views != 2 {
		t.Errorf("Views = %d after reseed, want 2", g.Views)
	}
	if g.Title != "Kept (revised)" {
		t.Errorf("Title = %q, want revised", g.Title)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestListGuides_FeaturedFirstThenNewest(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedGuide(t, db, "old", "Old", func(g *model.Guide) { g.CreatedAt = base })
	seedGuide(t, db, "new", "New", func(g *model.Guide) { g.CreatedAt = base.Add(48 * time.Hour) })
	seedGuide(t, db, "featured", "Featured", func(g *model.Guide) { g.CreatedAt = base.Add(-time.Hour); g.IsFeatured = true })
	seedGuide(t, db, "hidden", "Hidden", func(g *model.Guide) { g.IsPublished = false })

	items, total, err := db.Resources().ListGuides(context.Background(), repository.GuideFilter{})
	if err != nil {
		t.Fatalf("ListGuides() error = %v", err)
	}
	if got := names(items, func(g model.Guide) string { return g.Slug }); !equalStrings(got, []string{"featured", "new", "old"}) {
		t.Errorf("order = %v", got)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	recent, _, _ := db.Resources().ListGuides(context.Background(), repository.GuideFilter{Order: repository.OrderNewest})
	if got := names(recent, func(g model.Guide) string { return g.Slug }); !equalStrings(got, []string{"new", "old", "featured"}) {
		t.Errorf("newest order = %v", got)
	}
}

func TestListGuides_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cat := &model.Category{Name: "Visas", IsActive: true}
	if err := db.Resources().UpsertCategory(ctx, cat); err != nil {
		t.Fatalf("UpsertCategory() error = %v", err)
	}
	seedGuide(t, db, "schengen", "Schengen visa", func(g *model.Guide) {
		g.GuideType = model.GuideVisa
		g.CategoryID = &cat.ID
		g.Keywords = "europe, embassy"
	})
	seedGuide(t, db, "ielts", "IELTS preparation", func(g *model.Guide) {
		g.GuideType = model.GuideLanguage
		g.DifficultyLevel = model.DifficultyAdvanced
		g.Summary = "Band 7 tips"
	})

	tests := []struct {
		name   string
		filter repository.GuideFilter
		want   []string
	}{
		{"search keywords", repository.GuideFilter{Search: "EMBASSY"}, []string{"schengen"}},
		{"search summary", repository.GuideFilter{Search: "band 7"}, []string{"ielts"}},
		{"category", repository.GuideFilter{CategoryID: cat.ID}, []string{"schengen"}},
		{"type", repository.GuideFilter{Type: model.GuideLanguage}, []string{"ielts"}},
		{"difficulty", repository.GuideFilter{Difficulty: model.DifficultyAdvanced}, []string{"ielts"}},
		{"no match", repository.GuideFilter{Search: "mars"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, _, err := db.Resources().ListGuides(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListGuides() error = %v", err)
			}
			if got := names(items, func(g model.Guide) string { return g.Slug }); !equalStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// =========================================================================
// CATEGORY TESTS
// =========================================================================

func TestCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := db.Resources()

	parent := &model.Category{Name: "Study", DisplayOrder: 2, IsActive: true}
	first := &model.Category{Name: "Visas", DisplayOrder: 1, IsActive: true}
	inactive := &model.Category{Name: "Old", IsActive: false}
	for _, c := range []*model.Category{parent, first, inactive} {
		if err := store.UpsertCategory(ctx, c); err != nil {
			t.Fatalf("UpsertCategory() error = %v", err)
		}
	}
	child := &model.Category{Name: "Study/PhD", ParentID: &parent.ID, IsActive: true}
	store.UpsertCategory(ctx, child)

	top, err := store.ListTopCategories(ctx)
	if err != nil {
		t.Fatalf("ListTopCategories() error = %v", err)
	}
	if got := names(top, func(c model.Category) string { return c.Name }); !equalStrings(got, []string{"Visas", "Study"}) {
		t.Errorf("top categories = %v", got)
	}
	if top[0].Color != model.DefaultCategoryColor {
		t.Errorf("Color = %q, want default", top[0].Color)
	}

	if _, err := store.GetCategory(ctx, inactive.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetCategory(inactive) error = %v, want ErrNotFound", err)
	}

	// Deleting a parent removes its children.
	if _, err := db.conn.Exec(`DELETE FROM categories WHERE id = ?`, parent.ID); err != nil {
		t.Fatalf("deleting parent: %v", err)
	}
	if _, err := store.GetCategory(ctx, child.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("child survived parent delete: %v", err)
	}
}
