package sqlite

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// =========================================================================
// COUNTRY TESTS
// =========================================================================

func TestListCountries_OrderAndActive(t *testing.T) {
	db := newTestDB(t)
	seedCountry(t, db, "SE", "Sweden")
	seedCountry(t, db, "DE", "Germany")
	hidden := &model.Country{Code: "XX", Name: "Atlantis", IsActive: false}
	if err := db.Catalog().UpsertCountry(context.Background(), hidden); err != nil {
		t.Fatalf("UpsertCountry() error = %v", err)
	}

	items, total, err := db.Catalog().ListCountries(context.Background(), repository.CountryFilter{})
	if err != nil {
		t.Fatalf("ListCountries() error = %v", err)
	}
	got := names(items, func(c model.Country) string { return c.Name })
	if !equalStrings(got, []string{"Germany", "Sweden"}) {
		t.Errorf("ListCountries() = %v, want [Germany Sweden]", got)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}

func TestListCountries_Search(t *testing.T) {
	db := newTestDB(t)
	seedCountry(t, db, "DE", "Germany")
	seedCountry(t, db, "NL", "Netherlands")
	c := &model.Country{Code: "FR", Name: "France", Description: "Covers 100% of tuition", IsActive: true}
	db.Catalog().UpsertCountry(context.Background(), c)

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"France", "Germany", "Netherlands"}},
		{"GERM", []string{"Germany"}},
		{"tuition", []string{"France"}},
		{"100%", []string{"France"}},
		// "%" alone must match literally, not everything.
		{"%", []string{"France"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			items, total, err := db.Catalog().ListCountries(context.Background(), repository.CountryFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("ListCountries() error = %v", err)
			}
			got := names(items, func(c model.Country) string { return c.Name })
			if !equalStrings(got, tt.want) {
				t.Errorf("search %q = %v, want %v", tt.search, got, tt.want)
			}
			if total != len(tt.want) {
				t.Errorf("total = %d, want %d", total, len(tt.want))
			}
		})
	}
}

func TestListCountries_Pagination(t *testing.T) {
	db := newTestDB(t)
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		seedCountry(t, db, n, "Country "+n)
	}

	items, total, err := db.Catalog().ListCountries(context.Background(),
		repository.CountryFilter{ListOptions: repository.ListOptions{Limit: 2, Offset: 2}})
	if err != nil {
		t.Fatalf("ListCountries() error = %v", err)
	}
	got := names(items, func(c model.Country) string { return c.Code })
	if !equalStrings(got, []string{"C", "D"}) {
		t.Errorf("page 2 = %v, want [C D]", got)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}

	past, _, err := db.Catalog().ListCountries(context.Background(),
		repository.CountryFilter{ListOptions: repository.ListOptions{Limit: 2, Offset: 10}})
	if err != nil {
		t.Fatalf("ListCountries() past end error = %v", err)
	}
	if len(past) != 0 {
		t.Errorf("past the end returned %d items, want 0", len(past))
	}

	far, total, err := db.Catalog().ListCountries(context.Background(),
		repository.CountryFilter{ListOptions: repository.ListOptions{Limit: 2, Offset: model.Offset(math.MaxInt, 2)}})
	if err != nil {
		t.Fatalf("ListCountries() huge offset error = %v", err)
	}
	if len(far) != 0 || total != 5 {
		t.Errorf("huge offset returned %d items (total %d), want 0 of 5", len(far), total)
	}
}

func TestGetCountryByCode(t *testing.T) {
	db := newTestDB(t)
	c := &model.Country{
		Code: "DE", Name: "Germany", IsActive: true,
		Translations: i18n.Translations{"ckb": {"name": "ئەڵمانیا"}},
	}
	if err := db.Catalog().UpsertCountry(context.Background(), c); err != nil {
		t.Fatalf("UpsertCountry() error = %v", err)
	}

	got, err := db.Catalog().GetCountryByCode(context.Background(), "DE")
	if err != nil {
		t.Fatalf("GetCountryByCode() error = %v", err)
	}
	if got.Translations.Get(i18n.Sorani, "name", "") != "ئەڵمانیا" {
		t.Errorf("translations not round-tripped: %v", got.Translations)
	}

	if _, err := db.Catalog().GetCountryByCode(context.Background(), "ZZ"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetCountryByCode(ZZ) error = %v, want ErrNotFound", err)
	}
}

func TestUpsertCountry_KeepsID(t *testing.T) {
	db := newTestDB(t)
	first := seedCountry(t, db, "UK", "United Kingdom")

	again := &model.Country{Code: "UK", Name: "Britain", IsActive: true}
	if err := db.Catalog().UpsertCountry(context.Background(), again); err != nil {
		t.Fatalf("UpsertCountry() error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("upsert changed id: %q -> %q", first.ID, again.ID)
	}
	n, _ := db.Catalog().CountCountries(context.Background())
	if n != 1 {
		t.Errorf("CountCountries() = %d, want 1", n)
	}
}

func TestCountriesByIDs(t *testing.T) {
	db := newTestDB(t)
	de := seedCountry(t, db, "DE", "Germany")
	se := seedCountry(t, db, "SE", "Sweden")
	seedCountry(t, db, "NO", "Norway")

	got, err := db.Catalog().CountriesByIDs(context.Background(), []string{se.ID, de.ID, "missing"})
	if err != nil {
		t.Fatalf("CountriesByIDs() error = %v", err)
	}
	if !equalStrings(names(got, func(c model.Country) string { return c.Code }), []string{"DE", "SE"}) {
		t.Errorf("CountriesByIDs() = %v", got)
	}

	none, err := db.Catalog().CountriesByIDs(context.Background(), nil)
	if err != nil || len(none) != 0 {
		t.Errorf("CountriesByIDs(nil) = %v, %v; want empty", none, err)
	}
}

// =========================================================================
// UNIVERSITY TESTS
// =========================================================================

func TestListUniversities_Filters(t *testing.T) {
	db := newTestDB(t)
	de := seedCountry(t, db, "DE", "Germany")
	se := seedCountry(t, db, "SE", "Sweden")
	seedUniversity(t, db, de, "TU Berlin", "Berlin")
	seedUniversity(t, db, de, "LMU Munich", "Munich")
	lund := seedUniversity(t, db, se, "Lund University", "Lund")
	lund.UniversityType = model.UniversityResearch
	db.Catalog().UpsertUniversity(context.Background(), lund)

	tests := []struct {
		name   string
		filter repository.UniversityFilter
		want   []string
	}{
		{"all", repository.UniversityFilter{}, []string{"LMU Munich", "Lund University", "TU Berlin"}},
		{"by country code", repository.UniversityFilter{CountryCode: "DE"}, []string{"LMU Munich", "TU Berlin"}},
		{"by type", repository.UniversityFilter{Type: model.UniversityResearch}, []string{"Lund University"}},
		{"search city", repository.UniversityFilter{Search: "munich"}, []string{"LMU Munich"}},
		{"search country name", repository.UniversityFilter{Search: "swed"}, []string{"Lund University"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := db.Catalog().ListUniversities(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("ListUniversities() error = %v", err)
			}
			got := names(items, func(u model.University) string { return u.Name })
			if !equalStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if total != len(tt.want) {
				t.Errorf("total = %d, want %d", total, len(tt.want))
			}
			for _, u := range items {
				if u.Country == nil || u.Country.ID != u.CountryID {
					t.Errorf("%s: country not joined", u.Name)
				}
			}
		})
	}
}

func TestGetUniversity_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Catalog().GetUniversity(context.Background(), "nope")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUniversity() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// PROGRAM TESTS
// =========================================================================

func TestListPrograms_OrderAndFilters(t *testing.T) {
	db := newTestDB(t)
	de := seedCountry(t, db, "DE", "Germany")
	tub := seedUniversity(t, db, de, "TU Berlin", "Berlin")
	aachen := seedUniversity(t, db, de, "RWTH Aachen", "Aachen")
	cs := seedProgram(t, db, tub, "Computer Science", model.ProgramMaster, "Computer Science")
	seedProgram(t, db, tub, "Architecture", model.ProgramBachelor, "Architecture")
	seedProgram(t, db, aachen, "Data Science", model.ProgramMaster, "Computer Science and Statistics")

	tests := []struct {
		name   string
		filter repository.ProgramFilter
		want   []string
	}{
		// University name first, then program name.
		{"all", repository.ProgramFilter{}, []string{"Data Science", "Architecture", "Computer Science"}},
		{"level", repository.ProgramFilter{Level: model.ProgramMaster}, []string{"Data Science", "Computer Science"}},
		{"field substring", repository.ProgramFilter{Field: "computer"}, []string{"Data Science", "Computer Science"}},
		{"search university", repository.ProgramFilter{Search: "aachen"}, []string{"Data Science"}},
		{"exclude", repository.ProgramFilter{Field: "Computer", Level: model.ProgramMaster, ExcludeID: cs.ID}, []string{"Data Science"}},
		{"university", repository.ProgramFilter{UniversityID: tub.ID}, []string{"Architecture", "Computer Science"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, _, err := db.Catalog().ListPrograms(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("ListPrograms() error = %v", err)
			}
			got := names(items, func(p model.Program) string { return p.Name })
			if !equalStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetProgram_JoinsUniversityAndCountry(t *testing.T) {
	db := newTestDB(t)
	de := seedCountry(t, db, "DE", "Germany")
	tub := seedUniversity(t, db, de, "TU Berlin", "Berlin")
	p := seedProgram(t, db, tub, "Physics", model.ProgramPhD, "Physics")

	got, err := db.Catalog().GetProgram(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetProgram() error = %v", err)
	}
	if got.University == nil || got.University.Name != "TU Berlin" {
		t.Fatalf("university not joined: %+v", got.University)
	}
	if got.University.Country == nil || got.University.Country.Code != "DE" {
		t.Errorf("country not joined: %+v", got.University.Country)
	}
}

// =========================================================================
// SCHOLARSHIP TESTS
// =========================================================================

func TestListScholarships(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	de := seedCountry(t, db, "DE", "Germany")
	tub := seedUniversity(t, db, de, "TU Berlin", "Berlin")
	p := seedProgram(t, db, tub, "Physics", model.ProgramPhD, "Physics")

	daad := &model.Scholarship{
		Name: "DAAD", Provider: "DAAD", CountryID: &de.ID, ScholarshipType: model.ScholarshipFull,
		ApplicationDeadline: model.NewDate(2026, 10, 1), ProgramIDs: []string{p.ID}, IsActive: true,
	}
	kurdish := &model.Scholarship{
		Name: "Kurdish Scholars Fund", Provider: "KSF", ScholarshipType: model.ScholarshipPartial,
		KurdishSpecific: true, ApplicationDeadline: model.NewDate(2026, 12, 1), IsActive: true,
	}
	for _, s := range []*model.Scholarship{daad, kurdish} {
		if err := db.Catalog().UpsertScholarship(ctx, s); err != nil {
			t.Fatalf("UpsertScholarship() error = %v", err)
		}
	}

	all, total, err := db.Catalog().ListScholarships(ctx, repository.ScholarshipFilter{})
	if err != nil {
		t.Fatalf("ListScholarships() error = %v", err)
	}
	// Latest deadline first.
	if got := names(all, func(s model.Scholarship) string { return s.Name }); !equalStrings(got, []string{"Kurdish Scholars Fund", "DAAD"}) {
		t.Errorf("order = %v", got)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(all[1].ProgramIDs) != 1 || all[1].ProgramIDs[0] != p.ID {
		t.Errorf("DAAD program ids = %v, want [%s]", all[1].ProgramIDs, p.ID)
	}

	only, _, _ := db.Catalog().ListScholarships(ctx, repository.ScholarshipFilter{KurdishOnly: true})
	if len(only) != 1 || !only[0].KurdishSpecific {
		t.Errorf("KurdishOnly = %v", only)
	}

	byCountry, _, _ := db.Catalog().ListScholarships(ctx, repository.ScholarshipFilter{CountryID: de.ID})
	if len(byCountry) != 1 || byCountry[0].Name != "DAAD" {
		t.Errorf("by country = %v", byCountry)
	}
}

func TestUpsertScholarship_ReplacesProgramLinks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	de := seedCountry(t, db, "DE", "Germany")
	tub := seedUniversity(t, db, de, "TU Berlin", "Berlin")
	a := seedProgram(t, db, tub, "A", model.ProgramMaster, "A")
	b := seedProgram(t, db, tub, "B", model.ProgramMaster, "B")

	s := &model.Scholarship{Name: "Fund", Provider: "P", ScholarshipType: model.ScholarshipTuition, ProgramIDs: []string{a.ID}, IsActive: true}
	db.Catalog().UpsertScholarship(ctx, s)
	s2 := &model.Scholarship{Name: "Fund", Provider: "P", ScholarshipType: model.ScholarshipTuition, ProgramIDs: []string{b.ID}, IsActive: true}
	if err := db.Catalog().UpsertScholarship(ctx, s2); err != nil {
		t.Fatalf("UpsertScholarship() error = %v", err)
	}

	items, _, _ := db.Catalog().ListScholarships(ctx, repository.ScholarshipFilter{})
	if len(items) != 1 {
		t.Fatalf("got %d scholarships, want 1", len(items))
	}
	if !equalStrings(items[0].ProgramIDs, []string{b.ID}) {
		t.Errorf("ProgramIDs = %v, want [%s]", items[0].ProgramIDs, b.ID)
	}
}
