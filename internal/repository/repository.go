// Package repository defines the storage interfaces the services depend on.
//
// Services never see SQL. They talk to these interfaces, and
// internal/repository/sqlite provides the only production implementation.
// Tests substitute hand-written fakes.
//
// CONVENTIONS:
//   - Lookups that find nothing return apperror.ErrNotFound.
//   - Per-user records are always fetched with the owner's id; a record that
//     exists but belongs to someone else is reported as not found.
//   - List methods that paginate return the page of items and the total
//     number of matching rows.
package repository

import (
	"context"

	"github.com/sakif/applyhelp/internal/model"
)

// ListOptions bounds a list query. A zero Limit means "no limit".
type ListOptions struct {
	Limit  int
	Offset int
}

// ===== IDENTITY =====

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByGitHubID(ctx context.Context, githubID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error

	ListDialects(ctx context.Context) ([]model.Dialect, error)
	// SetDialects replaces the user's dialects with the given codes.
	SetDialects(ctx context.Context, userID string, codes []string) error
	UserDialects(ctx context.Context, userID string) ([]model.Dialect, error)
}

type ProfileRepository interface {
	// GetOrCreate returns the user's profile, creating an empty one on first
	// access. Concurrent callers always end up with the same single row.
	GetOrCreate(ctx context.Context, userID string) (*model.Profile, error)
	// Get never creates; a user without a profile yields ErrNotFound.
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
}

// ===== CATALOG =====

type CountryFilter struct {
	Search string
	ListOptions
}

type UniversityFilter struct {
	Search      string
	CountryCode string
	CountryID   string
	Type        model.UniversityType
	ListOptions
}

type ProgramFilter struct {
	Search string
	Level  model.ProgramLevel
	// Field matches a substring of field_of_study.
	Field        string
	CountryID    string
	UniversityID string
	ExcludeID    string
	ListOptions
}

type ScholarshipFilter struct {
	Search       string
	Type         model.ScholarshipType
	KurdishOnly  bool
	CountryID    string
	UniversityID string
	ListOptions
}

// CatalogRepository only ever returns active records.
type CatalogRepository interface {
	ListCountries(ctx context.Context, f CountryFilter) ([]model.Country, int, error)
	GetCountryByCode(ctx context.Context, code string) (*model.Country, error)
	CountriesByIDs(ctx context.Context, ids []string) ([]model.Country, error)
	CountCountries(ctx context.Context) (int, error)

	ListUniversities(ctx context.Context, f UniversityFilter) ([]model.University, int, error)
	GetUniversity(ctx context.Context, id string) (*model.University, error)
	UniversitiesByIDs(ctx context.Context, ids []string) ([]model.University, error)
	CountUniversities(ctx context.Context) (int, error)

	ListPrograms(ctx context.Context, f ProgramFilter) ([]model.Program, int, error)
	GetProgram(ctx context.Context, id string) (*model.Program, error)

	ListScholarships(ctx context.Context, f ScholarshipFilter) ([]model.Scholarship, int, error)
}

// ===== TRACKER =====

type TrackerSort int

const (
	// SortByPriority orders by priority rank, then nearest deadline, with
	// undated trackers last.
	SortByPriority TrackerSort = iota
	// SortByRecent orders by last update, newest first.
	SortByRecent
)

type TrackerFilter struct {
	UserID string
	Status model.ApplicationStatus
	Sort   TrackerSort
	ListOptions
}

type EmailFilter struct {
	UserID    string
	TrackerID string
	ListOptions
}

type TrackerRepository interface {
	Create(ctx context.Context, t *model.Tracker) error
	Get(ctx context.Context, userID, id string) (*model.Tracker, error)
	List(ctx context.Context, f TrackerFilter) ([]model.Tracker, int, error)
	Update(ctx context.Context, t *model.Tracker) error
	Delete(ctx context.Context, userID, id string) error
	CountByStatus(ctx context.Context, userID string, statuses []model.ApplicationStatus) (int, error)

	CreateDocument(ctx context.Context, d *model.Document) error
	GetDocument(ctx context.Context, trackerID, id string) (*model.Document, error)
	ListDocuments(ctx context.Context, trackerID string) ([]model.Document, error)
	UpdateDocument(ctx context.Context, d *model.Document) error
	DeleteDocument(ctx context.Context, trackerID, id string) error

	CreateEmail(ctx context.Context, e *model.EmailLog) error
	GetEmail(ctx context.Context, userID, id string) (*model.EmailLog, error)
	// ListEmails returns emails newest first.
	ListEmails(ctx context.Context, f EmailFilter) ([]model.EmailLog, int, error)
	// UpdateEmailResponse stores only the response fields of e.
	UpdateEmailResponse(ctx context.Context, e *model.EmailLog) error
}

// ===== COMPOSER =====

type TemplateFilter struct {
	Type      model.TemplateType
	Formality model.Formality
}

type TipFilter struct {
	Context model.TipContext
	Limit   int
}

type ComposerRepository interface {
	// ListTemplates returns active templates ordered by type, then formality.
	ListTemplates(ctx context.Context, f TemplateFilter) ([]model.EmailTemplate, error)
	GetTemplate(ctx context.Context, id string) (*model.EmailTemplate, error)
	// ListTips returns active tips, highest priority first.
	ListTips(ctx context.Context, f TipFilter) ([]model.CommunicationTip, error)
}

// ===== RESUME =====

type ResumeRepository interface {
	Create(ctx context.Context, r *model.Resume) error
	Get(ctx context.Context, userID, id string) (*model.Resume, error)
	// List returns the user's resumes, most recently updated first.
	List(ctx context.Context, userID string) ([]model.Resume, error)
	Update(ctx context.Context, r *model.Resume) error
	Delete(ctx context.Context, userID, id string) error

	// Sections loads every sub-collection of the resume in display order.
	Sections(ctx context.Context, resumeID string) (*model.ResumeDetail, error)
	// The Save methods insert when the item has no ID and update otherwise.
	SaveEducation(ctx context.Context, e *model.Education) error
	SaveExperience(ctx context.Context, e *model.Experience) error
	SaveSkill(ctx context.Context, s *model.Skill) error
	SavePublication(ctx context.Context, p *model.Publication) error
	SaveAward(ctx context.Context, a *model.Award) error
	DeleteSectionItem(ctx context.Context, section model.ResumeSection, resumeID, id string) error

	// ListCVTemplates returns active templates ordered by country style, then type.
	ListCVTemplates(ctx context.Context) ([]model.CVTemplate, error)
	GetCVTemplate(ctx context.Context, id string) (*model.CVTemplate, error)
}

// ===== RESOURCES =====

type GuideOrder int

const (
	// OrderFeaturedFirst puts featured guides first, then newest.
	OrderFeaturedFirst GuideOrder = iota
	// OrderNewest orders by creation time only.
	OrderNewest
)

type GuideFilter struct {
	Search       string
	CategoryID   string
	Type         model.GuideType
	Difficulty   model.Difficulty
	CountryID    string
	FeaturedOnly bool
	ExcludeID    string
	Order        GuideOrder
	ListOptions
}

// ResourceRepository only ever returns published guides and active categories.
type ResourceRepository interface {
	ListGuides(ctx context.Context, f GuideFilter) ([]model.Guide, int, error)
	// IncrementViews atomically adds one view and returns the updated guide.
	IncrementViews(ctx context.Context, slug string) (*model.Guide, error)
	// IncrementHelpful atomically adds one helpful vote and returns the updated guide.
	IncrementHelpful(ctx context.Context, slug string) (*model.Guide, error)
	CountGuides(ctx context.Context) (int, error)

	// ListTopCategories returns active categories without a parent, in display order.
	ListTopCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
}
