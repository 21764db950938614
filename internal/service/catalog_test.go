package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/model"
)

func TestCountries_PageMetadata(t *testing.T) {
	cat := testCatalog()
	for i := 0; i < 25; i++ {
		cat.countries = append(cat.countries, model.Country{ID: fmt.Sprintf("c-%d", i), Code: fmt.Sprintf("X%d", i), Name: "Extra"})
	}
	svc := NewCatalogService(cat, testLogger())
	ctx := context.Background()

	first, err := svc.Countries(ctx, CountryQuery{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Len(t, first.Items, CountriesPageSize)
	assert.Equal(t, 27, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	past, err := svc.Countries(ctx, CountryQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items, "items must encode as [] not null")
}

func TestCountries_SearchNoMatch(t *testing.T) {
	svc := NewCatalogService(testCatalog(), testLogger())

	got, err := svc.Countries(context.Background(), CountryQuery{Search: "  atlantis "})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
	assert.NotNil(t, got.Items)
}

func TestCountry_ByCodeCaseInsensitive(t *testing.T) {
	svc := NewCatalogService(testCatalog(), testLogger())

	d, err := svc.Country(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, "Germany", d.Country.Name)
	assert.Len(t, d.Universities, 2)

	_, err = svc.Country(context.Background(), "zz")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProgram_SimilarUsesFirstWordOfField(t *testing.T) {
	cat := testCatalog()
	svc := NewCatalogService(cat, testLogger())

	d, err := svc.Program(context.Background(), "p-cs")
	require.NoError(t, err)

	// p-cs2 shares level and the word "Computer"; p-phd shares the field but
	// not the level.
	require.Len(t, d.Similar, 1)
	assert.Equal(t, "p-cs2", d.Similar[0].ID)

	last := cat.programFilters[len(cat.programFilters)-1]
	assert.Equal(t, "Computer", last.Field)
	assert.Equal(t, "p-cs", last.ExcludeID)
	assert.Equal(t, similarProgramsLimit, last.Limit)
}

func TestProgram_NoFieldNoSimilar(t *testing.T) {
	cat := testCatalog()
	cat.programs = append(cat.programs, model.Program{ID: "p-blank", UniversityID: "u-tum", Level: model.ProgramMaster})
	svc := NewCatalogService(cat, testLogger())

	d, err := svc.Program(context.Background(), "p-blank")
	require.NoError(t, err)
	assert.Empty(t, d.Similar)
	assert.NotNil(t, d.Similar)
	assert.Empty(t, cat.programFilters, "no similar-program query without a field")
}

func TestScholarships_KurdishOnly(t *testing.T) {
	svc := NewCatalogService(testCatalog(), testLogger())

	got, err := svc.Scholarships(context.Background(), ScholarshipQuery{KurdishOnly: true})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "s-krd", got.Items[0].ID)
}

func TestCompare(t *testing.T) {
	svc := NewCatalogService(testCatalog(), testLogger())
	ctx := context.Background()

	c, err := svc.Compare(ctx, []string{"c-se", " c-de", "c-se", "", "missing"}, nil)
	require.NoError(t, err)
	assert.Len(t, c.Countries, 2)
	assert.Nil(t, c.Universities)

	c, err = svc.Compare(ctx, nil, []string{"u-kth"})
	require.NoError(t, err)
	assert.Nil(t, c.Countries)
	require.Len(t, c.Universities, 1)
}

func TestCompactIDs_Caps(t *testing.T) {
	ids := make([]string, 0, MaxCompareItems+5)
	for i := 0; i < MaxCompareItems+5; i++ {
		ids = append(ids, fmt.Sprint(i))
	}
	assert.Len(t, compactIDs(ids), MaxCompareItems)
	assert.Equal(t, []string{"a", "b"}, compactIDs([]string{" a", "b", "a", "  "}))
}

func TestCountries_Localized(t *testing.T) {
	cat := testCatalog()
	cat.countries[0].Translations = i18n.Translations{}
	cat.countries[0].Translations.Set(i18n.Sorani, "name", "ئەڵمانیا")
	svc := NewCatalogService(cat, testLogger())

	ctx := i18n.WithLocale(context.Background(), i18n.Sorani)
	got, err := svc.Countries(ctx, CountryQuery{})
	require.NoError(t, err)
	assert.Equal(t, "ئەڵمانیا", got.Items[0].Name)
	assert.Equal(t, "Sweden", got.Items[1].Name, "missing override falls back to English")
}

func TestQuiz_Localized(t *testing.T) {
	svc := NewCatalogService(testCatalog(), testLogger())

	en := svc.Quiz(context.Background())
	require.Len(t, en, 4)
	assert.Equal(t, "What is your current education level?", en[0].Question)
	assert.Equal(t, "text", en[2].Type)
	assert.Len(t, en[3].Options, len(model.AllRegions))

	ckb := svc.Quiz(i18n.WithLocale(context.Background(), i18n.Sorani))
	assert.NotEqual(t, en[0].Question, ckb[0].Question)
	assert.Equal(t, en[0].Options[0].Value, ckb[0].Options[0].Value, "values are never translated")
}
