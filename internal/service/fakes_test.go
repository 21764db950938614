package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/auth"
	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

// =========================================================================
// FAKE REPOSITORIES
// =========================================================================
//
// Hand-written in-memory implementations of the repository interfaces.
// They store copies, never the caller's pointers, and follow the same
// conventions as the sqlite stores: missing or foreign records are
// ErrNotFound, lists come back in the documented order.
//
// Each fake keeps only what the service tests need. Unused filter fields
// are ignored.

var idSeq struct {
	sync.Mutex
	n int
}

func fakeID(prefix string) string {
	idSeq.Lock()
	defer idSeq.Unlock()
	idSeq.n++
	return fmt.Sprintf("%s-%d", prefix, idSeq.n)
}

// paginate applies limit/offset to an already ordered slice.
func paginate[T any](items []T, opts repository.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ===== users / profiles =====

type fakeUsers struct {
	users    map[string]*model.User
	dialects []model.Dialect
	assigned map[string][]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users: map[string]*model.User{},
		dialects: []model.Dialect{
			{ID: 1, Code: "sorani", NameEnglish: "Sorani"},
			{ID: 2, Code: "kurmanji", NameEnglish: "Kurmanji"},
		},
		assigned: map[string][]string{},
	}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return apperror.Conflict("user", u.Username)
		}
	}
	u.ID = fakeID("user")
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	out := *u
	return &out, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (f *fakeUsers) GetByGitHubID(_ context.Context, githubID int64) (*model.User, error) {
	for _, u := range f.users {
		if u.GitHubID != nil && *u.GitHubID == githubID {
			out := *u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("user", fmt.Sprint(githubID))
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperror.NotFound("user", u.ID)
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUsers) ListDialects(context.Context) ([]model.Dialect, error) {
	return f.dialects, nil
}

func (f *fakeUsers) SetDialects(_ context.Context, userID string, codes []string) error {
	for _, c := range codes {
		known := slices.ContainsFunc(f.dialects, func(d model.Dialect) bool { return d.Code == c })
		if !known {
			return apperror.ValidationFailed("dialects", "unknown dialect "+c)
		}
	}
	f.assigned[userID] = slices.Clone(codes)
	return nil
}

func (f *fakeUsers) UserDialects(_ context.Context, userID string) ([]model.Dialect, error) {
	out := []model.Dialect{}
	for _, d := range f.dialects {
		if slices.Contains(f.assigned[userID], d.Code) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeProfiles struct {
	profiles map[string]*model.Profile // by user ID
	creates  int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[string]*model.Profile{}}
}

func (f *fakeProfiles) GetOrCreate(ctx context.Context, userID string) (*model.Profile, error) {
	if _, ok := f.profiles[userID]; !ok {
		f.creates++
		f.profiles[userID] = &model.Profile{ID: fakeID("profile"), UserID: userID}
	}
	return f.Get(ctx, userID)
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("profile", userID)
	}
	out := *p
	return &out, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *model.Profile) error {
	if _, ok := f.profiles[p.UserID]; !ok {
		return apperror.NotFound("profile", p.UserID)
	}
	stored := *p
	f.profiles[p.UserID] = &stored
	return nil
}

// ===== catalog =====

// fakeCatalog holds active records only, matching what the real store
// returns.
type fakeCatalog struct {
	countries    []model.Country
	universities []model.University
	programs     []model.Program
	scholarships []model.Scholarship

	// programFilters records every program filter it was asked for.
	programFilters []repository.ProgramFilter
}

func (f *fakeCatalog) ListCountries(_ context.Context, flt repository.CountryFilter) ([]model.Country, int, error) {
	var out []model.Country
	for _, c := range f.countries {
		if flt.Search == "" || containsFold(c.Name, flt.Search) || containsFold(c.Description, flt.Search) {
			out = append(out, c)
		}
	}
	return paginate(out, flt.ListOptions), len(out), nil
}

func (f *fakeCatalog) GetCountryByCode(_ context.Context, code string) (*model.Country, error) {
	for _, c := range f.countries {
		if c.Code == code {
			out := c
			return &out, nil
		}
	}
	return nil, apperror.NotFound("country", code)
}

func (f *fakeCatalog) CountriesByIDs(_ context.Context, ids []string) ([]model.Country, error) {
	var out []model.Country
	for _, c := range f.countries {
		if slices.Contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountCountries(context.Context) (int, error) { return len(f.countries), nil }

func (f *fakeCatalog) ListUniversities(_ context.Context, flt repository.UniversityFilter) ([]model.University, int, error) {
	var out []model.University
	for _, u := range f.universities {
		if flt.CountryID != "" && u.CountryID != flt.CountryID {
			continue
		}
		if flt.Type != "" && u.UniversityType != flt.Type {
			continue
		}
		if flt.Search != "" && !containsFold(u.Name, flt.Search) {
			continue
		}
		out = append(out, u)
	}
	return paginate(out, flt.ListOptions), len(out), nil
}

func (f *fakeCatalog) GetUniversity(_ context.Context, id string) (*model.University, error) {
	for _, u := range f.universities {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("university", id)
}

func (f *fakeCatalog) UniversitiesByIDs(_ context.Context, ids []string) ([]model.University, error) {
	var out []model.University
	for _, u := range f.universities {
		if slices.Contains(ids, u.ID) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountUniversities(context.Context) (int, error) {
	return len(f.universities), nil
}

func (f *fakeCatalog) ListPrograms(_ context.Context, flt repository.ProgramFilter) ([]model.Program, int, error) {
	f.programFilters = append(f.programFilters, flt)
	var out []model.Program
	for _, p := range f.programs {
		if flt.Level != "" && p.Level != flt.Level {
			continue
		}
		if flt.Field != "" && !containsFold(p.FieldOfStudy, flt.Field) {
			continue
		}
		if flt.UniversityID != "" && p.UniversityID != flt.UniversityID {
			continue
		}
		if flt.ExcludeID != "" && p.ID == flt.ExcludeID {
			continue
		}
		if flt.Search != "" && !containsFold(p.Name, flt.Search) {
			continue
		}
		out = append(out, p)
	}
	return paginate(out, flt.ListOptions), len(out), nil
}

func (f *fakeCatalog) GetProgram(_ context.Context, id string) (*model.Program, error) {
	for _, p := range f.programs {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, apperror.NotFound("program", id)
}

func (f *fakeCatalog) ListScholarships(_ context.Context, flt repository.ScholarshipFilter) ([]model.Scholarship, int, error) {
	var out []model.Scholarship
	for _, s := range f.scholarships {
		if flt.KurdishOnly && !s.KurdishSpecific {
			continue
		}
		if flt.Type != "" && s.ScholarshipType != flt.Type {
			continue
		}
		out = append(out, s)
	}
	return paginate(out, flt.ListOptions), len(out), nil
}

// ===== tracker =====

type fakeTrackers struct {
	catalog   *fakeCatalog
	trackers  map[string]*model.Tracker
	documents map[string]*model.Document
	emails    []*model.EmailLog
	clock     time.Time
}

func newFakeTrackers(catalog *fakeCatalog) *fakeTrackers {
	return &fakeTrackers{
		catalog:   catalog,
		trackers:  map[string]*model.Tracker{},
		documents: map[string]*model.Document{},
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so recency ordering is
// deterministic.
func (f *fakeTrackers) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeTrackers) withUniversity(t model.Tracker) model.Tracker {
	if u, err := f.catalog.GetUniversity(context.Background(), t.UniversityID); err == nil {
		t.University = u
	}
	return t
}

func (f *fakeTrackers) Create(_ context.Context, t *model.Tracker) error {
	if _, err := f.catalog.GetUniversity(context.Background(), t.UniversityID); err != nil {
		return apperror.ValidationFailed("university", "unknown university")
	}
	t.ID = fakeID("tracker")
	t.CreatedAt = f.tick()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	f.trackers[t.ID] = &stored
	return nil
}

func (f *fakeTrackers) Get(_ context.Context, userID, id string) (*model.Tracker, error) {
	t, ok := f.trackers[id]
	if !ok || t.UserID != userID {
		return nil, apperror.NotFound("application", id)
	}
	out := f.withUniversity(*t)
	return &out, nil
}

func (f *fakeTrackers) List(_ context.Context, flt repository.TrackerFilter) ([]model.Tracker, int, error) {
	var out []model.Tracker
	for _, t := range f.trackers {
		if t.UserID != flt.UserID || (flt.Status != "" && t.Status != flt.Status) {
			continue
		}
		out = append(out, f.withUniversity(*t))
	}
	sort.Slice(out, func(i, j int) bool {
		if flt.Sort == repository.SortByRecent {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return paginate(out, flt.ListOptions), len(out), nil
}

func (f *fakeTrackers) Update(_ context.Context, t *model.Tracker) error {
	existing, ok := f.trackers[t.ID]
	if !ok || existing.UserID != t.UserID {
		return apperror.NotFound("application", t.ID)
	}
	t.UpdatedAt = f.tick()
	stored := *t
	stored.University, stored.Program = nil, nil
	f.trackers[t.ID] = &stored
	return nil
}

func (f *fakeTrackers) Delete(_ context.Context, userID, id string) error {
	t, ok := f.trackers[id]
	if !ok || t.UserID != userID {
		return apperror.NotFound("application", id)
	}
	delete(f.trackers, id)
	return nil
}

func (f *fakeTrackers) CountByStatus(_ context.Context, userID string, statuses []model.ApplicationStatus) (int, error) {
	n := 0
	for _, t := range f.trackers {
		if t.UserID == userID && slices.Contains(statuses, t.Status) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTrackers) CreateDocument(_ context.Context, d *model.Document) error {
	d.ID = fakeID("doc")
	d.CreatedAt = f.tick()
	d.UpdatedAt = d.CreatedAt
	stored := *d
	f.documents[d.ID] = &stored
	return nil
}

func (f *fakeTrackers) GetDocument(_ context.Context, trackerID, id string) (*model.Document, error) {
	d, ok := f.documents[id]
	if !ok || d.TrackerID != trackerID {
		return nil, apperror.NotFound("document", id)
	}
	out := *d
	return &out, nil
}

func (f *fakeTrackers) ListDocuments(_ context.Context, trackerID string) ([]model.Document, error) {
	var out []model.Document
	for _, d := range f.documents {
		if d.TrackerID == trackerID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTrackers) UpdateDocument(_ context.Context, d *model.Document) error {
	existing, ok := f.documents[d.ID]
	if !ok || existing.TrackerID != d.TrackerID {
		return apperror.NotFound("document", d.ID)
	}
	stored := *d
	f.documents[d.ID] = &stored
	return nil
}

func (f *fakeTrackers) DeleteDocument(_ context.Context, trackerID, id string) error {
	d, ok := f.documents[id]
	if !ok || d.TrackerID != trackerID {
		return apperror.NotFound("document", id)
	}
	delete(f.documents, id)
	return nil
}

func (f *fakeTrackers) CreateEmail(ctx context.Context, e *model.EmailLog) error {
	if e.TrackerID != nil {
		if _, err := f.Get(ctx, e.UserID, *e.TrackerID); err != nil {
			return apperror.ValidationFailed("application", "unknown application")
		}
	}
	e.ID = fakeID("email")
	e.SentDate = f.tick()
	stored := *e
	f.emails = append(f.emails, &stored)
	return nil
}

func (f *fakeTrackers) GetEmail(_ context.Context, userID, id string) (*model.EmailLog, error) {
	for _, e := range f.emails {
		if e.ID == id && e.UserID == userID {
			out := *e
			return &out, nil
		}
	}
	return nil, apperror.NotFound("email", id)
}

func (f *fakeTrackers) ListEmails(_ context.Context, flt repository.EmailFilter) ([]model.EmailLog, int, error) {
	var out []model.EmailLog
	for i := len(f.emails) - 1; i >= 0; i-- {
		e := f.emails[i]
		if e.UserID != flt.UserID {
			continue
		}
		if flt.TrackerID != "" && (e.TrackerID == nil || *e.TrackerID != flt.TrackerID) {
			continue
		}
		out = append(out, *e)
	}
	return paginate(out, flt.ListOptions), len(out), nil
}

func (f *fakeTrackers) UpdateEmailResponse(_ context.Context, e *model.EmailLog) error {
	for _, stored := range f.emails {
		if stored.ID == e.ID && stored.UserID == e.UserID {
			stored.ResponseReceived = e.ResponseReceived
			stored.ResponseDate = e.ResponseDate
			stored.Notes = e.Notes
			return nil
		}
	}
	return apperror.NotFound("email", e.ID)
}

// ===== composer =====

type fakeComposer struct {
	templates []model.EmailTemplate // active only
	tips      []model.CommunicationTip
}

func (f *fakeComposer) ListTemplates(_ context.Context, flt repository.TemplateFilter) ([]model.EmailTemplate, error) {
	var out []model.EmailTemplate
	for _, t := range f.templates {
		if (flt.Type == "" || t.TemplateType == flt.Type) && (flt.Formality == "" || t.FormalityLevel == flt.Formality) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeComposer) GetTemplate(_ context.Context, id string) (*model.EmailTemplate, error) {
	for _, t := range f.templates {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, apperror.NotFound("template", id)
}

func (f *fakeComposer) ListTips(_ context.Context, flt repository.TipFilter) ([]model.CommunicationTip, error) {
	var out []model.CommunicationTip
	for _, t := range f.tips {
		if flt.Context == "" || t.Context == flt.Context {
			out = append(out, t)
		}
	}
	return paginate(out, repository.ListOptions{Limit: flt.Limit}), nil
}

// ===== resume =====

type fakeResumes struct {
	resumes   map[string]*model.Resume
	education map[string]*model.Education
	skills    map[string]*model.Skill
	templates []model.CVTemplate
}

func newFakeResumes() *fakeResumes {
	return &fakeResumes{
		resumes:   map[string]*model.Resume{},
		education: map[string]*model.Education{},
		skills:    map[string]*model.Skill{},
	}
}

func (f *fakeResumes) Create(_ context.Context, r *model.Resume) error {
	r.ID = fakeID("resume")
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	stored := *r
	f.resumes[r.ID] = &stored
	return nil
}

func (f *fakeResumes) Get(_ context.Context, userID, id string) (*model.Resume, error) {
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return nil, apperror.NotFound("resume", id)
	}
	out := *r
	return &out, nil
}

func (f *fakeResumes) List(_ context.Context, userID string) ([]model.Resume, error) {
	var out []model.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResumes) Update(_ context.Context, r *model.Resume) error {
	existing, ok := f.resumes[r.ID]
	if !ok || existing.UserID != r.UserID {
		return apperror.NotFound("resume", r.ID)
	}
	stored := *r
	f.resumes[r.ID] = &stored
	return nil
}

func (f *fakeResumes) Delete(_ context.Context, userID, id string) error {
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return apperror.NotFound("resume", id)
	}
	delete(f.resumes, id)
	return nil
}

func (f *fakeResumes) Sections(_ context.Context, resumeID string) (*model.ResumeDetail, error) {
	d := &model.ResumeDetail{
		Education:    []model.Education{},
		Experience:   []model.Experience{},
		Skills:       []model.Skill{},
		Publications: []model.Publication{},
		Awards:       []model.Award{},
	}
	for _, e := range f.education {
		if e.ResumeID == resumeID {
			d.Education = append(d.Education, *e)
		}
	}
	for _, s := range f.skills {
		if s.ResumeID == resumeID {
			d.Skills = append(d.Skills, *s)
		}
	}
	return d, nil
}

func (f *fakeResumes) SaveEducation(_ context.Context, e *model.Education) error {
	if e.ID == "" {
		e.ID = fakeID("edu")
	} else if existing, ok := f.education[e.ID]; !ok || existing.ResumeID != e.ResumeID {
		return apperror.NotFound("education", e.ID)
	}
	stored := *e
	f.education[e.ID] = &stored
	return nil
}

func (f *fakeResumes) SaveExperience(context.Context, *model.Experience) error { return nil }

func (f *fakeResumes) SaveSkill(_ context.Context, s *model.Skill) error {
	if s.ID == "" {
		s.ID = fakeID("skill")
	} else if existing, ok := f.skills[s.ID]; !ok || existing.ResumeID != s.ResumeID {
		return apperror.NotFound("skill", s.ID)
	}
	stored := *s
	f.skills[s.ID] = &stored
	return nil
}

func (f *fakeResumes) SavePublication(context.Context, *model.Publication) error { return nil }

func (f *fakeResumes) SaveAward(context.Context, *model.Award) error { return nil }

func (f *fakeResumes) DeleteSectionItem(_ context.Context, section model.ResumeSection, resumeID, id string) error {
	if section != model.SectionEducation {
		return apperror.NotFound(string(section), id)
	}
	e, ok := f.education[id]
	if !ok || e.ResumeID != resumeID {
		return apperror.NotFound("education", id)
	}
	delete(f.education, id)
	return nil
}

func (f *fakeResumes) ListCVTemplates(context.Context) ([]model.CVTemplate, error) {
	return f.templates, nil
}

func (f *fakeResumes) GetCVTemplate(_ context.Context, id string) (*model.CVTemplate, error) {
	for _, t := range f.templates {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, apperror.NotFound("cv template", id)
}

// ===== resources =====

type fakeResources struct {
	mu         sync.Mutex
	guides     []*model.Guide // published only, newest last
	categories []model.Category

	guideFilters []repository.GuideFilter
}

func (f *fakeResources) ListGuides(_ context.Context, flt repository.GuideFilter) ([]model.Guide, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guideFilters = append(f.guideFilters, flt)
	var out []model.Guide
	for i := len(f.guides) - 1; i >= 0; i-- {
		g := f.guides[i]
		if flt.FeaturedOnly && !g.IsFeatured {
			continue
		}
		if flt.Type != "" && g.GuideType != flt.Type {
			continue
		}
		if flt.CategoryID != "" && (g.CategoryID == nil || *g.CategoryID != flt.CategoryID) {
			continue
		}
		if flt.ExcludeID != "" && g.ID == flt.ExcludeID {
			continue
		}
		if flt.Search != "" && !containsFold(g.Title, flt.Search) {
			continue
		}
		out = append(out, *g)
	}
	return paginate(out, flt.ListOptions), len(out), nil
}

func (f *fakeResources) increment(slug string, field func(*model.Guide) *int64) (*model.Guide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.guides {
		if g.Slug == slug {
			*field(g)++
			out := *g
			return &out, nil
		}
	}
	return nil, apperror.NotFound("guide", slug)
}

func (f *fakeResources) IncrementViews(_ context.Context, slug string) (*model.Guide, error) {
	return f.increment(slug, func(g *model.Guide) *int64 { return &g.Views })
}

func (f *fakeResources) IncrementHelpful(_ context.Context, slug string) (*model.Guide, error) {
	return f.increment(slug, func(g *model.Guide) *int64 { return &g.HelpfulVotes })
}

func (f *fakeResources) CountGuides(context.Context) (int, error) { return len(f.guides), nil }

func (f *fakeResources) ListTopCategories(context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		if c.ParentID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeResources) GetCategory(_ context.Context, id string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, apperror.NotFound("category", id)
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// testCatalog has two countries, two universities in Germany and one in
// Sweden, and three programs.
func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		countries: []model.Country{
			{ID: "c-de", Code: "DE", Name: "Germany", IsActive: true},
			{ID: "c-se", Code: "SE", Name: "Sweden", IsActive: true},
		},
		universities: []model.University{
			{ID: "u-tum", CountryID: "c-de", Name: "TU Munich", UniversityType: model.UniversityResearch, IsActive: true},
			{ID: "u-hd", CountryID: "c-de", Name: "Heidelberg", UniversityType: model.UniversityPublic, IsActive: true},
			{ID: "u-kth", CountryID: "c-se", Name: "KTH", UniversityType: model.UniversityPublic, IsActive: true},
		},
		programs: []model.Program{
			{ID: "p-cs", UniversityID: "u-tum", Name: "MSc Informatics", Level: model.ProgramMaster, FieldOfStudy: "Computer Science", IsActive: true},
			{ID: "p-cs2", UniversityID: "u-kth", Name: "MSc Computer Engineering", Level: model.ProgramMaster, FieldOfStudy: "Computer Engineering", IsActive: true},
			{ID: "p-phd", UniversityID: "u-hd", Name: "PhD Computing", Level: model.ProgramPhD, FieldOfStudy: "Computer Science", IsActive: true},
		},
		scholarships: []model.Scholarship{
			{ID: "s-daad", Name: "DAAD", ScholarshipType: model.ScholarshipFull, KurdishSpecific: false, IsActive: true},
			{ID: "s-krd", Name: "Kurdish Fund", ScholarshipType: model.ScholarshipPartial, KurdishSpecific: true, IsActive: true},
		},
	}
}

func testAccountService(t *testing.T) (*AccountService, *fakeUsers, *fakeProfiles, *fakeTrackers) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-that-is-long-enough-1234", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	users := newFakeUsers()
	profiles := newFakeProfiles()
	trackers := newFakeTrackers(testCatalog())
	svc := NewAccountService(users, profiles, trackers, tokens,
		auth.NewPasswordServiceWithCost(bcrypt.MinCost), metrics.New(), testLogger())
	return svc, users, profiles, trackers
}
