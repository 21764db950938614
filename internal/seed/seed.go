// Package seed loads reference data (the destination catalog, email
// templates and tips, CV templates and the guide library) from a JSON
// fixture document into the store.
//
// Fixtures refer to each other by natural key instead of id: universities
// nest under their country, programs under their university, category
// children under their parent, and scholarships and guides name the country
// code, university name, program names and category name they belong to.
// Every write is an upsert on the same natural key the store uses, so
// loading the same document twice changes nothing.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository/sqlite"
)

// Default is the fixture document shipped with the binary.
//
//go:embed fixtures.json
var Default []byte

// ===== TARGET STORES =====

type CatalogWriter interface {
	UpsertCountry(ctx context.Context, c *model.Country) error
	UpsertUniversity(ctx context.Context, u *model.University) error
	UpsertProgram(ctx context.Context, p *model.Program) error
	UpsertScholarship(ctx context.Context, sc *model.Scholarship) error
}

type ComposerWriter interface {
	UpsertTemplate(ctx context.Context, t *model.EmailTemplate) error
	UpsertTip(ctx context.Context, t *model.CommunicationTip) error
}

type CVTemplateWriter interface {
	UpsertCVTemplate(ctx context.Context, t *model.CVTemplate) error
}

type ResourceWriter interface {
	UpsertCategory(ctx context.Context, c *model.Category) error
	UpsertGuide(ctx context.Context, g *model.Guide) error
}

// Target is the set of stores a fixture document is written to.
type Target struct {
	Catalog   CatalogWriter
	Composer  ComposerWriter
	Resumes   CVTemplateWriter
	Resources ResourceWriter
}

// FromDB returns the sqlite stores of db as a Target.
func FromDB(db *sqlite.DB) Target {
	return Target{
		Catalog:   db.Catalog(),
		Composer:  db.Composer(),
		Resumes:   db.Resumes(),
		Resources: db.Resources(),
	}
}

// ===== FIXTURE DOCUMENT =====

// The fixture types embed the model structs. Fields declared on the fixture
// itself shadow the embedded ones of the same JSON name, which is how
// isActive and isPublished default to true when a fixture leaves them out.

type Fixtures struct {
	Countries    []countryFixture     `json:"countries"`
	Scholarships []scholarshipFixture `json:"scholarships"`
	Templates    []templateFixture    `json:"emailTemplates"`
	Tips         []tipFixture         `json:"tips"`
	CVTemplates  []cvTemplateFixture  `json:"cvTemplates"`
	Categories   []categoryFixture    `json:"categories"`
	Guides       []guideFixture       `json:"guides"`
}

type countryFixture struct {
	model.Country
	Active       *bool               `json:"isActive"`
	Universities []universityFixture `json:"universities"`
}

type universityFixture struct {
	model.University
	Active   *bool            `json:"isActive"`
	Programs []programFixture `json:"programs"`
}

type programFixture struct {
	model.Program
	Active *bool `json:"isActive"`
}

type scholarshipFixture struct {
	model.Scholarship
	Active     *bool    `json:"isActive"`
	Country    string   `json:"country"`    // country code
	University string   `json:"university"` // university name within Country
	Programs   []string `json:"programs"`   // program names within University
}

type templateFixture struct {
	model.EmailTemplate
	Active *bool `json:"isActive"`
}

type tipFixture struct {
	model.CommunicationTip
	Active *bool `json:"isActive"`
}

type cvTemplateFixture struct {
	model.CVTemplate
	Active *bool `json:"isActive"`
}

type categoryFixture struct {
	model.Category
	Active   *bool             `json:"isActive"`
	Children []categoryFixture `json:"children"`
}

type guideFixture struct {
	model.Guide
	Published  *bool  `json:"isPublished"`
	Category   string `json:"category"`   // category name
	Country    string `json:"country"`    // country code
	University string `json:"university"` // university name within Country
}

func orTrue(b *bool) bool { return b == nil || *b }

// Parse decodes a fixture document. Unknown fields are rejected so that a
// misspelled key fails loudly instead of silently loading a blank column.
func Parse(r io.Reader) (*Fixtures, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: decoding fixtures: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// check reports every enum value and required key that would produce an
// unusable row.
func (f *Fixtures) check() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("seed: "+format, args...))
	}

	for _, c := range f.Countries {
		if c.Code == "" || c.Name == "" {
			bad("country %q needs a code and a name", c.Name)
		}
		for _, u := range c.Universities {
			if u.Name == "" {
				bad("country %s has a university without a name", c.Code)
			}
			if !u.UniversityType.Valid() {
				bad("university %q: unknown type %q", u.Name, u.UniversityType)
			}
			for _, p := range u.Programs {
				if !p.Level.Valid() {
					bad("program %q: unknown level %q", p.Name, p.Level)
				}
			}
		}
	}
	for _, s := range f.Scholarships {
		if !s.ScholarshipType.Valid() {
			bad("scholarship %q: unknown type %q", s.Name, s.ScholarshipType)
		}
		if len(s.Programs) > 0 && s.University == "" {
			bad("scholarship %q lists programs without a university", s.Name)
		}
	}
	for _, t := range f.Templates {
		if !t.TemplateType.Valid() || !t.FormalityLevel.Valid() {
			bad("email template %q: unknown type %q or formality %q", t.Name, t.TemplateType, t.FormalityLevel)
		}
	}
	for _, t := range f.Tips {
		if !t.Context.Valid() {
			bad("tip %q: unknown context %q", t.Title, t.Context)
		}
	}
	for _, t := range f.CVTemplates {
		if !t.TemplateType.Valid() || !t.CountryStyle.Valid() {
			bad("cv template %q: unknown type %q or style %q", t.Name, t.TemplateType, t.CountryStyle)
		}
	}
	for _, g := range f.Guides {
		if g.Slug == "" {
			bad("guide %q has no slug", g.Title)
		}
		if !g.GuideType.Valid() || !g.DifficultyLevel.Valid() {
			bad("guide %s: unknown type %q or difficulty %q", g.Slug, g.GuideType, g.DifficultyLevel)
		}
	}
	return errors.Join(errs...)
}

// ===== LOADING =====

// Summary counts the records written per kind.
type Summary struct {
	Countries    int `json:"countries"`
	Universities int `json:"universities"`
	Programs     int `json:"programs"`
	Scholarships int `json:"scholarships"`
	Templates    int `json:"emailTemplates"`
	Tips         int `json:"tips"`
	CVTemplates  int `json:"cvTemplates"`
	Categories   int `json:"categories"`
	Guides       int `json:"guides"`
}

// loader carries the natural-key to id maps built while writing:
// countries by code, universities by code then name, programs by university
// id then name, categories by name.
type loader struct {
	t          Target
	sum        Summary
	countries  map[string]string
	unis       map[string]map[string]string
	programs   map[string]map[string][]string
	categories map[string]string
}

// Load writes f to t. It stops at the first failing write; everything
// written before it stays, and a rerun picks up from the same natural keys.
func Load(ctx context.Context, t Target, f *Fixtures) (Summary, error) {
	l := &loader{
		t:          t,
		countries:  map[string]string{},
		unis:       map[string]map[string]string{},
		programs:   map[string]map[string][]string{},
		categories: map[string]string{},
	}

	steps := []func(context.Context, *Fixtures) error{
		l.loadCountries,
		l.loadScholarships,
		l.loadComposer,
		l.loadCVTemplates,
		l.loadCategories,
		l.loadGuides,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return l.sum, err
		}
	}
	return l.sum, nil
}

func (l *loader) loadCountries(ctx context.Context, f *Fixtures) error {
	for _, cf := range f.Countries {
		c := cf.Country
		c.IsActive = orTrue(cf.Active)
		if err := l.t.Catalog.UpsertCountry(ctx, &c); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		l.sum.Countries++
		l.countries[c.Code] = c.ID
		l.unis[c.Code] = map[string]string{}

		for _, uf := range cf.Universities {
			u := uf.University
			u.CountryID = c.ID
			u.Country = nil
			u.IsActive = orTrue(uf.Active)
			if err := l.t.Catalog.UpsertUniversity(ctx, &u); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			l.sum.Universities++
			l.unis[c.Code][u.Name] = u.ID
			byName := map[string][]string{}
			l.programs[u.ID] = byName

			for _, pf := range uf.Programs {
				p := pf.Program
				p.UniversityID = u.ID
				p.University = nil
				p.IsActive = orTrue(pf.Active)
				if err := l.t.Catalog.UpsertProgram(ctx, &p); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				l.sum.Programs++
				byName[p.Name] = append(byName[p.Name], p.ID)
			}
		}
	}
	return nil
}

// university resolves a (country code, university name) pair.
func (l *loader) university(code, name string) (string, error) {
	id, ok := l.unis[code][name]
	if !ok {
		return "", fmt.Errorf("seed: unknown university %q in country %q", name, code)
	}
	return id, nil
}

func (l *loader) country(code string) (*string, error) {
	if code == "" {
		return nil, nil
	}
	id, ok := l.countries[code]
	if !ok {
		return nil, fmt.Errorf("seed: unknown country %q", code)
	}
	return &id, nil
}

func (l *loader) loadScholarships(ctx context.Context, f *Fixtures) error {
	for _, sf := range f.Scholarships {
		s := sf.Scholarship
		s.IsActive = orTrue(sf.Active)

		countryID, err := l.country(sf.Country)
		if err != nil {
			return fmt.Errorf("scholarship %q: %w", s.Name, err)
		}
		s.CountryID = countryID
		s.UniversityID = nil
		s.ProgramIDs = nil

		if sf.University != "" {
			uid, err := l.university(sf.Country, sf.University)
			if err != nil {
				return fmt.Errorf("scholarship %q: %w", s.Name, err)
			}
			s.UniversityID = &uid
			for _, name := range sf.Programs {
				ids := l.programs[uid][name]
				if len(ids) == 0 {
					return fmt.Errorf("seed: scholarship %q: unknown program %q at %s", s.Name, name, sf.University)
				}
				s.ProgramIDs = append(s.ProgramIDs, ids...)
			}
		}

		if err := l.t.Catalog.UpsertScholarship(ctx, &s); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		l.sum.Scholarships++
	}
	return nil
}

func (l *loader) loadComposer(ctx context.Context, f *Fixtures) error {
	for _, tf := range f.Templates {
		t := tf.EmailTemplate
		t.IsActive = orTrue(tf.Active)
		if err := l.t.Composer.UpsertTemplate(ctx, &t); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		l.sum.Templates++
	}
	for _, tf := range f.Tips {
		t := tf.CommunicationTip
		t.IsActive = orTrue(tf.Active)
		if err := l.t.Composer.UpsertTip(ctx, &t); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		l.sum.Tips++
	}
	return nil
}

func (l *loader) loadCVTemplates(ctx context.Context, f *Fixtures) error {
	for _, tf := range f.CVTemplates {
		t := tf.CVTemplate
		t.IsActive = orTrue(tf.Active)
		if err := l.t.Resumes.UpsertCVTemplate(ctx, &t); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		l.sum.CVTemplates++
	}
	return nil
}

func (l *loader) loadCategories(ctx context.Context, f *Fixtures) error {
	var walk func(items []categoryFixture, parent *string) error
	walk = func(items []categoryFixture, parent *string) error {
		for i, cf := range items {
			c := cf.Category
			c.ParentID = parent
			c.IsActive = orTrue(cf.Active)
			if c.DisplayOrder == 0 {
				c.DisplayOrder = i + 1
			}
			if err := l.t.Resources.UpsertCategory(ctx, &c); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			l.sum.Categories++
			l.categories[c.Name] = c.ID

			id := c.ID
			if err := walk(cf.Children, &id); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(f.Categories, nil)
}

func (l *loader) loadGuides(ctx context.Context, f *Fixtures) error {
	for _, gf := range f.Guides {
		g := gf.Guide
		g.IsPublished = orTrue(gf.Published)
		g.AuthorID = nil
		g.CategoryID = nil
		g.UniversityID = nil

		if gf.Category != "" {
			id, ok := l.categories[gf.Category]
			if !ok {
				return fmt.Errorf("seed: guide %s: unknown category %q", g.Slug, gf.Category)
			}
			g.CategoryID = &id
		}
		countryID, err := l.country(gf.Country)
		if err != nil {
			return fmt.Errorf("guide %s: %w", g.Slug, err)
		}
		g.CountryID = countryID
		if gf.University != "" {
			uid, err := l.university(gf.Country, gf.University)
			if err != nil {
				return fmt.Errorf("guide %s: %w", g.Slug, err)
			}
			g.UniversityID = &uid
		}

		if err := l.t.Resources.UpsertGuide(ctx, &g); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		l.sum.Guides++
	}
	return nil
}
