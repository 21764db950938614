package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

func testResources() *fakeResources {
	visas := "cat-visa"
	return &fakeResources{
		guides: []*model.Guide{
			{ID: "g-1", Slug: "student-visa-germany", Title: "Student visa in Germany", GuideType: model.GuideVisa, CategoryID: &visas, IsFeatured: true, IsPublished: true},
			{ID: "g-2", Slug: "student-visa-sweden", Title: "Student visa in Sweden", GuideType: model.GuideVisa, CategoryID: &visas, IsPublished: true},
			{ID: "g-3", Slug: "living-in-berlin", Title: "Living in Berlin", GuideType: model.GuideCountry, IsPublished: true},
			{ID: "g-4", Slug: "visa-interview", Title: "Visa interview", GuideType: model.GuideVisa, IsPublished: true},
		},
		categories: []model.Category{
			{ID: visas, Name: "Visas", IsActive: true},
			{ID: "cat-sub", Name: "Schengen", ParentID: &visas, IsActive: true},
		},
	}
}

func TestGuide_CountsEveryView(t *testing.T) {
	res := testResources()
	m := metrics.New()
	svc := NewResourceService(res, m, testLogger())
	ctx := context.Background()

	var last *GuideDetail
	for i := 0; i < 3; i++ {
		d, err := svc.Guide(ctx, "student-visa-germany")
		require.NoError(t, err)
		last = d
	}
	assert.Equal(t, int64(3), last.Guide.Views)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.GuideViews))

	_, err := svc.Guide(ctx, "no-such-guide")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGuide_ConcurrentViews(t *testing.T) {
	res := testResources()
	svc := NewResourceService(res, nil, testLogger())

	const workers, each = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				if _, err := svc.Guide(context.Background(), "living-in-berlin"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(workers*each), res.guides[2].Views)
}

func TestGuide_RelatedSameTypeAndCategory(t *testing.T) {
	res := testResources()
	svc := NewResourceService(res, nil, testLogger())

	d, err := svc.Guide(context.Background(), "student-visa-germany")
	require.NoError(t, err)
	require.Len(t, d.Related, 1)
	assert.Equal(t, "g-2", d.Related[0].ID, "same type and category, never itself")

	last := res.guideFilters[len(res.guideFilters)-1]
	assert.Equal(t, relatedGuides, last.Limit)

	// without a category only the type counts
	d, err = svc.Guide(context.Background(), "visa-interview")
	require.NoError(t, err)
	assert.Len(t, d.Related, 2)
}

func TestResourcesHome(t *testing.T) {
	res := testResources()
	svc := NewResourceService(res, nil, testLogger())

	h, err := svc.Home(context.Background())
	require.NoError(t, err)
	require.Len(t, h.Featured, 1)
	assert.Equal(t, "g-1", h.Featured[0].ID)
	assert.Len(t, h.Recent, 4)
	require.Len(t, h.Categories, 1, "only top-level categories")

	assert.Equal(t, repository.OrderNewest, res.guideFilters[1].Order)
}

func TestCategoryGuides(t *testing.T) {
	res := testResources()
	for i := 0; i < 20; i++ {
		cat := "cat-visa"
		res.guides = append(res.guides, &model.Guide{ID: fmt.Sprintf("x-%d", i), Slug: fmt.Sprintf("x-%d", i), GuideType: model.GuideVisa, CategoryID: &cat})
	}
	svc := NewResourceService(res, nil, testLogger())
	ctx := context.Background()

	got, err := svc.CategoryGuides(ctx, "cat-visa", 2)
	require.NoError(t, err)
	assert.Equal(t, "Visas", got.Category.Name)
	assert.Equal(t, 22, got.Guides.Total)
	assert.Len(t, got.Guides.Items, 22-CategoryGuidesPageSize)
	assert.Equal(t, CategoryGuidesPageSize, got.Guides.PageSize)

	_, err = svc.CategoryGuides(ctx, "cat-inactive", 1)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestMarkHelpful(t *testing.T) {
	res := testResources()
	m := metrics.New()
	svc := NewResourceService(res, m, testLogger())

	n, err := svc.MarkHelpful(context.Background(), "living-in-berlin")
	require.NoError(t, err)
	n, err = svc.MarkHelpful(context.Background(), "living-in-berlin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HelpfulVotes))
	assert.Zero(t, res.guides[2].Views, "votes never count as views")
}

func TestHomeStats(t *testing.T) {
	svc := NewHomeService(testCatalog(), testResources())

	s, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, HomeStats{Guides: 4, Universities: 3, Countries: 2}, *s)
}
