package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

// Preview sizes of the destinations overview and the detail pages.
const (
	overviewCountries    = 8
	overviewUniversities = 6
	overviewPrograms     = 8
	overviewScholarships = 4
	countryUniversities  = 10
	countryScholarships  = 5
	countryPrograms      = 10
	similarProgramsLimit = 5
)

// CatalogService serves the read-only destination directory.
type CatalogService struct {
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

func NewCatalogService(catalog repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, logger: logger}
}

type Destinations struct {
	Countries    []model.Country     `json:"countries"`
	Universities []model.University  `json:"universities"`
	Programs     []model.Program     `json:"programs"`
	Scholarships []model.Scholarship `json:"scholarships"`
}

func (s *CatalogService) Overview(ctx context.Context) (*Destinations, error) {
	var (
		d   Destinations
		err error
	)
	if d.Countries, _, err = s.catalog.ListCountries(ctx, repository.CountryFilter{
		ListOptions: repository.ListOptions{Limit: overviewCountries},
	}); err != nil {
		return nil, fmt.Errorf("destinations overview: %w", err)
	}
	if d.Universities, _, err = s.catalog.ListUniversities(ctx, repository.UniversityFilter{
		ListOptions: repository.ListOptions{Limit: overviewUniversities},
	}); err != nil {
		return nil, fmt.Errorf("destinations overview: %w", err)
	}
	if d.Programs, _, err = s.catalog.ListPrograms(ctx, repository.ProgramFilter{
		ListOptions: repository.ListOptions{Limit: overviewPrograms},
	}); err != nil {
		return nil, fmt.Errorf("destinations overview: %w", err)
	}
	if d.Scholarships, _, err = s.catalog.ListScholarships(ctx, repository.ScholarshipFilter{
		ListOptions: repository.ListOptions{Limit: overviewScholarships},
	}); err != nil {
		return nil, fmt.Errorf("destinations overview: %w", err)
	}

	localizeAll(ctx, d.Countries)
	localizeAll(ctx, d.Universities)
	localizeAll(ctx, d.Programs)
	localizeAll(ctx, d.Scholarships)
	return &d, nil
}

// ===== COUNTRIES =====

type CountryQuery struct {
	Search string
	Page   int
}

func (s *CatalogService) Countries(ctx context.Context, q CountryQuery) (model.Page[model.Country], error) {
	page, opts := pageOptions(q.Page, CountriesPageSize)
	items, total, err := s.catalog.ListCountries(ctx, repository.CountryFilter{
		Search:      strings.TrimSpace(q.Search),
		ListOptions: opts,
	})
	if err != nil {
		return model.Page[model.Country]{}, fmt.Errorf("listing countries: %w", err)
	}
	localizeAll(ctx, items)
	return model.NewPage(items, page, CountriesPageSize, total), nil
}

type CountryDetail struct {
	Country      *model.Country      `json:"country"`
	Universities []model.University  `json:"universities"`
	Scholarships []model.Scholarship `json:"scholarships"`
	Programs     []model.Program     `json:"programs"`
}

// Country looks a destination up by its code (case-insensitive).
func (s *CatalogService) Country(ctx context.Context, code string) (*CountryDetail, error) {
	c, err := s.catalog.GetCountryByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	d := &CountryDetail{Country: c}

	if d.Universities, _, err = s.catalog.ListUniversities(ctx, repository.UniversityFilter{
		CountryID:   c.ID,
		ListOptions: repository.ListOptions{Limit: countryUniversities},
	}); err != nil {
		return nil, fmt.Errorf("country %s: %w", c.Code, err)
	}
	if d.Scholarships, _, err = s.catalog.ListScholarships(ctx, repository.ScholarshipFilter{
		CountryID:   c.ID,
		ListOptions: repository.ListOptions{Limit: countryScholarships},
	}); err != nil {
		return nil, fmt.Errorf("country %s: %w", c.Code, err)
	}
	if d.Programs, _, err = s.catalog.ListPrograms(ctx, repository.ProgramFilter{
		CountryID:   c.ID,
		ListOptions: repository.ListOptions{Limit: countryPrograms},
	}); err != nil {
		return nil, fmt.Errorf("country %s: %w", c.Code, err)
	}

	localize(ctx, d.Country)
	localizeAll(ctx, d.Universities)
	localizeAll(ctx, d.Scholarships)
	localizeAll(ctx, d.Programs)
	return d, nil
}

// ===== UNIVERSITIES =====

type UniversityQuery struct {
	Search string
	// Country is a country code.
	Country string
	Type    model.UniversityType
	Page    int
}

func (s *CatalogService) Universities(ctx context.Context, q UniversityQuery) (model.Page[model.University], error) {
	page, opts := pageOptions(q.Page, UniversitiesPageSize)
	items, total, err := s.catalog.ListUniversities(ctx, repository.UniversityFilter{
		Search:      strings.TrimSpace(q.Search),
		CountryCode: strings.ToUpper(strings.TrimSpace(q.Country)),
		Type:        q.Type,
		ListOptions: opts,
	})
	if err != nil {
		return model.Page[model.University]{}, fmt.Errorf("listing universities: %w", err)
	}
	localizeAll(ctx, items)
	return model.NewPage(items, page, UniversitiesPageSize, total), nil
}

type UniversityDetail struct {
	University   *model.University   `json:"university"`
	Programs     []model.Program     `json:"programs"`
	Scholarships []model.Scholarship `json:"scholarships"`
}

func (s *CatalogService) University(ctx context.Context, id string) (*UniversityDetail, error) {
	u, err := s.catalog.GetUniversity(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &UniversityDetail{University: u}
	if d.Programs, _, err = s.catalog.ListPrograms(ctx, repository.ProgramFilter{UniversityID: u.ID}); err != nil {
		return nil, fmt.Errorf("university %s: %w", u.ID, err)
	}
	if d.Scholarships, _, err = s.catalog.ListScholarships(ctx, repository.ScholarshipFilter{UniversityID: u.ID}); err != nil {
		return nil, fmt.Errorf("university %s: %w", u.ID, err)
	}

	localize(ctx, d.University)
	localizeAll(ctx, d.Programs)
	localizeAll(ctx, d.Scholarships)
	return d, nil
}

// ===== PROGRAMS =====

type ProgramQuery struct {
	Search string
	Level  model.ProgramLevel
	// Field matches any program whose field of study contains it.
	Field string
	Page  int
}

func (s *CatalogService) Programs(ctx context.Context, q ProgramQuery) (model.Page[model.Program], error) {
	page, opts := pageOptions(q.Page, ProgramsPageSize)
	items, total, err := s.catalog.ListPrograms(ctx, repository.ProgramFilter{
		Search:      strings.TrimSpace(q.Search),
		Level:       q.Level,
		Field:       strings.TrimSpace(q.Field),
		ListOptions: opts,
	})
	if err != nil {
		return model.Page[model.Program]{}, fmt.Errorf("listing programs: %w", err)
	}
	localizeAll(ctx, items)
	return model.NewPage(items, page, ProgramsPageSize, total), nil
}

type ProgramDetail struct {
	Program *model.Program  `json:"program"`
	Similar []model.Program `json:"similarPrograms"`
}

// Program returns a program with up to five similar ones: same level, and a
// field of study containing the first word of this program's field.
func (s *CatalogService) Program(ctx context.Context, id string) (*ProgramDetail, error) {
	p, err := s.catalog.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &ProgramDetail{Program: p, Similar: []model.Program{}}

	if words := strings.Fields(p.FieldOfStudy); len(words) > 0 {
		similar, _, err := s.catalog.ListPrograms(ctx, repository.ProgramFilter{
			Level:       p.Level,
			Field:       words[0],
			ExcludeID:   p.ID,
			ListOptions: repository.ListOptions{Limit: similarProgramsLimit},
		})
		if err != nil {
			return nil, fmt.Errorf("similar programs of %s: %w", p.ID, err)
		}
		d.Similar = similar
	}

	localize(ctx, d.Program)
	localizeAll(ctx, d.Similar)
	return d, nil
}

// ===== SCHOLARSHIPS =====

type ScholarshipQuery struct {
	Search      string
	Type        model.ScholarshipType
	KurdishOnly bool
	Page        int
}

func (s *CatalogService) Scholarships(ctx context.Context, q ScholarshipQuery) (model.Page[model.Scholarship], error) {
	page, opts := pageOptions(q.Page, ScholarshipsPageSize)
	items, total, err := s.catalog.ListScholarships(ctx, repository.ScholarshipFilter{
		Search:      strings.TrimSpace(q.Search),
		Type:        q.Type,
		KurdishOnly: q.KurdishOnly,
		ListOptions: opts,
	})
	if err != nil {
		return model.Page[model.Scholarship]{}, fmt.Errorf("listing scholarships: %w", err)
	}
	localizeAll(ctx, items)
	return model.NewPage(items, page, ScholarshipsPageSize, total), nil
}

// ===== COMPARE =====

type Comparison struct {
	Countries    []model.Country    `json:"countries,omitempty"`
	Universities []model.University `json:"universities,omitempty"`
}

// Compare loads the active countries and universities with the given IDs.
// Unknown or inactive IDs are skipped, an empty list leaves its side out and
// each list is cut to MaxCompareItems.
func (s *CatalogService) Compare(ctx context.Context, countryIDs, universityIDs []string) (*Comparison, error) {
	countryIDs = compactIDs(countryIDs)
	universityIDs = compactIDs(universityIDs)

	var (
		c   Comparison
		err error
	)
	if len(countryIDs) > 0 {
		if c.Countries, err = s.catalog.CountriesByIDs(ctx, countryIDs); err != nil {
			return nil, fmt.Errorf("comparing countries: %w", err)
		}
		localizeAll(ctx, c.Countries)
	}
	if len(universityIDs) > 0 {
		if c.Universities, err = s.catalog.UniversitiesByIDs(ctx, universityIDs); err != nil {
			return nil, fmt.Errorf("comparing universities: %w", err)
		}
		localizeAll(ctx, c.Universities)
	}
	return &c, nil
}

// compactIDs trims entries and drops blanks and duplicates, keeping order
// and at most MaxCompareItems ids.
func compactIDs(ids []string) []string {
	out := make([]string, 0, min(len(ids), MaxCompareItems))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if len(out) == MaxCompareItems {
			break
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ===== QUIZ =====

type QuizOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

type QuizQuestion struct {
	Name     string       `json:"name"`
	Question string       `json:"question"`
	Type     string       `json:"type"`
	Options  []QuizOption `json:"options,omitempty"`
}

// Quiz returns the destination quiz questions in the request locale.
func (s *CatalogService) Quiz(ctx context.Context) []QuizQuestion {
	loc := i18n.FromContext(ctx)
	choices := func(group string, keys ...string) []QuizOption {
		opts := make([]QuizOption, len(keys))
		for i, k := range keys {
			opts[i] = QuizOption{Value: k, Text: i18n.Label(loc, group, k)}
		}
		return opts
	}
	regions := make([]string, len(model.AllRegions))
	for i, r := range model.AllRegions {
		regions[i] = string(r)
	}

	return []QuizQuestion{
		{
			Name:     "current_education_level",
			Question: i18n.T(loc, "What is your current education level?"),
			Type:     "choice",
			Options:  choices(i18n.GroupEducationLevel, "bachelor", "master", "phd"),
		},
		{
			Name:     "preferred_study_level",
			Question: i18n.T(loc, "What is your preferred study level?"),
			Type:     "choice",
			Options:  choices(i18n.GroupProgramLevel, "master", "phd", "postdoc"),
		},
		{
			Name:     "field_of_study",
			Question: i18n.T(loc, "What is your field of study?"),
			Type:     "text",
		},
		{
			Name:     "region",
			Question: i18n.T(loc, "Which region are you from?"),
			Type:     "choice",
			Options:  choices(i18n.GroupRegion, regions...),
		},
	}
}
