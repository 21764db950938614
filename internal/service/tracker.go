package service

// TrackerService is the business logic layer for application tracking:
//
//	TrackerHandler (HTTP) → TrackerService (business rules) → TrackerRepository (DB)
//	                                                        ↘ CatalogRepository (university/program checks)
//
// Every method takes the caller's user ID. Records belonging to another user
// are reported as not found by the repository, so ownership never needs a
// separate check here beyond loading the parent tracker.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

type TrackerService struct {
	trackers repository.TrackerRepository
	catalog  repository.CatalogRepository
	policy   model.TransitionPolicy
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewTrackerService uses PermissiveTransitions when policy is nil.
func NewTrackerService(
	trackers repository.TrackerRepository,
	catalog repository.CatalogRepository,
	policy model.TransitionPolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) *TrackerService {
	if policy == nil {
		policy = model.PermissiveTransitions{}
	}
	return &TrackerService{
		trackers: trackers,
		catalog:  catalog,
		policy:   policy,
		metrics:  m,
		logger:   logger,
	}
}

// TrackerInput is the editable part of a tracker. UniversityID and
// ProgramID are only read on create.
type TrackerInput struct {
	UniversityID        string                  `json:"universityId" validate:"required"`
	ProgramID           *string                 `json:"programId"`
	ApplicationTitle    string                  `json:"applicationTitle" validate:"required,max=200"`
	Status              model.ApplicationStatus `json:"status" validate:"omitempty,enum"`
	Priority            model.Priority          `json:"priority" validate:"omitempty,enum"`
	ApplicationDeadline model.Date              `json:"applicationDeadline"`
	SubmissionDate      model.Date              `json:"submissionDate"`
	DecisionDate        model.Date              `json:"decisionDate"`
	SupervisorName      string                  `json:"supervisorName" validate:"max=200"`
	SupervisorEmail     string                  `json:"supervisorEmail" validate:"omitempty,email"`
	AdmissionContact    string                  `json:"admissionContact" validate:"max=200"`
	AdmissionEmail      string                  `json:"admissionEmail" validate:"omitempty,email"`
	ResearchArea        string                  `json:"researchArea" validate:"max=300"`
	FundingStatus       string                  `json:"fundingStatus" validate:"max=100"`
	ApplicationFee      decimal.NullDecimal     `json:"applicationFee"`
	Notes               string                  `json:"notes"`
	ProgressNotes       string                  `json:"progressNotes"`
}

func (in *TrackerInput) normalize() {
	in.UniversityID = strings.TrimSpace(in.UniversityID)
	in.ApplicationTitle = strings.TrimSpace(in.ApplicationTitle)
	in.SupervisorEmail = strings.TrimSpace(in.SupervisorEmail)
	in.AdmissionEmail = strings.TrimSpace(in.AdmissionEmail)
	if in.ProgramID != nil && strings.TrimSpace(*in.ProgramID) == "" {
		in.ProgramID = nil
	}
}

// validate runs the tag rules plus the fee bound and reports every failure.
func (in *TrackerInput) validate() error {
	fields := fieldErrors(in)
	if in.ApplicationFee.Valid && in.ApplicationFee.Decimal.IsNegative() {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["applicationFee"] = "must not be negative"
	}
	if len(fields) > 0 {
		return apperror.Invalid(fields)
	}
	return nil
}

// apply copies the editable fields onto t.
func (in *TrackerInput) apply(t *model.Tracker) {
	t.ApplicationTitle = in.ApplicationTitle
	t.ApplicationDeadline = in.ApplicationDeadline
	t.SubmissionDate = in.SubmissionDate
	t.DecisionDate = in.DecisionDate
	t.SupervisorName = strings.TrimSpace(in.SupervisorName)
	t.SupervisorEmail = in.SupervisorEmail
	t.AdmissionContact = strings.TrimSpace(in.AdmissionContact)
	t.AdmissionEmail = in.AdmissionEmail
	t.ResearchArea = strings.TrimSpace(in.ResearchArea)
	t.FundingStatus = strings.TrimSpace(in.FundingStatus)
	t.ApplicationFee = in.ApplicationFee
	t.Notes = in.Notes
	t.ProgressNotes = in.ProgressNotes
}

// Create starts a new application. The status is always planning, so an
// input status is neither validated nor stored; priority defaults to medium.
func (s *TrackerService) Create(ctx context.Context, userID string, in TrackerInput) (*model.Tracker, error) {
	in.normalize()
	in.Status = ""
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in.UniversityID, in.ProgramID); err != nil {
		return nil, err
	}

	t := &model.Tracker{
		UserID:       userID,
		UniversityID: in.UniversityID,
		ProgramID:    in.ProgramID,
		Status:       model.StatusPlanning,
		Priority:     in.Priority,
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	in.apply(t)

	if err := s.trackers.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating application for user %s: %w", userID, err)
	}

	s.metrics.ApplicationCreated()
	s.logger.Info("application created",
		slog.String("userID", userID),
		slog.String("trackerID", t.ID),
		slog.String("universityID", t.UniversityID),
	)
	return s.trackers.Get(ctx, userID, t.ID)
}

// checkReferences makes sure the university is active and, when given, the
// program is active and offered by that university.
func (s *TrackerService) checkReferences(ctx context.Context, universityID string, programID *string) error {
	if _, err := s.catalog.GetUniversity(ctx, universityID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ValidationFailed("universityId", "select a valid university")
		}
		return fmt.Errorf("checking university %s: %w", universityID, err)
	}
	if programID == nil {
		return nil
	}
	p, err := s.catalog.GetProgram(ctx, *programID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ValidationFailed("programId", "select a valid program")
		}
		return fmt.Errorf("checking program %s: %w", *programID, err)
	}
	if p.UniversityID != universityID {
		return apperror.ValidationFailed("programId", "the program is not offered by this university")
	}
	return nil
}

type TrackerQuery struct {
	Status model.ApplicationStatus
	// Recent orders by last update instead of priority and deadline.
	Recent bool
	Page   int
}

func (s *TrackerService) List(ctx context.Context, userID string, q TrackerQuery) (model.Page[model.Tracker], error) {
	page, opts := pageOptions(q.Page, TrackersPageSize)
	f := repository.TrackerFilter{
		UserID:      userID,
		Status:      q.Status,
		Sort:        repository.SortByPriority,
		ListOptions: opts,
	}
	if q.Recent {
		f.Sort = repository.SortByRecent
	}
	items, total, err := s.trackers.List(ctx, f)
	if err != nil {
		return model.Page[model.Tracker]{}, fmt.Errorf("listing applications of user %s: %w", userID, err)
	}
	localizeTrackers(ctx, items)
	return model.NewPage(items, page, TrackersPageSize, total), nil
}

// Detail returns the tracker with its documents and its emails, newest
// first.
func (s *TrackerService) Detail(ctx context.Context, userID, id string) (*model.TrackerDetail, error) {
	t, err := s.trackers.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.trackers.ListDocuments(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("application %s documents: %w", id, err)
	}
	emails, _, err := s.trackers.ListEmails(ctx, repository.EmailFilter{UserID: userID, TrackerID: t.ID})
	if err != nil {
		return nil, fmt.Errorf("application %s emails: %w", id, err)
	}
	if docs == nil {
		docs = []model.Document{}
	}
	if emails == nil {
		emails = []model.EmailLog{}
	}

	if t.University != nil {
		localize(ctx, t.University)
	}
	if t.Program != nil {
		localize(ctx, t.Program)
	}
	return &model.TrackerDetail{Tracker: t, Documents: docs, Emails: emails}, nil
}

// Update replaces the editable fields. An empty status or priority keeps
// the current value. The status change must pass the transition policy.
func (s *TrackerService) Update(ctx context.Context, userID, id string, in TrackerInput) (*model.Tracker, error) {
	t, err := s.trackers.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// The university is fixed after creation, so the required rule is
	// satisfied from the stored record.
	in.UniversityID = t.UniversityID
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	from := t.Status
	if in.Status != "" {
		if !s.policy.Allowed(from, in.Status) {
			return nil, apperror.ValidationFailed("status",
				fmt.Sprintf("cannot move an application from %s to %s", from, in.Status))
		}
		t.Status = in.Status
	}
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	in.apply(t)

	if err := s.trackers.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating application %s: %w", id, err)
	}

	if t.Status != from {
		s.metrics.StatusChanged(string(t.Status))
		s.logger.Info("application status changed",
			slog.String("trackerID", t.ID),
			slog.String("from", string(from)),
			slog.String("to", string(t.Status)),
		)
	}
	return s.trackers.Get(ctx, userID, id)
}

func (s *TrackerService) Delete(ctx context.Context, userID, id string) error {
	if err := s.trackers.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("application deleted", slog.String("userID", userID), slog.String("trackerID", id))
	return nil
}

// ===== DOCUMENTS =====

type DocumentInput struct {
	DocumentType model.DocumentType   `json:"documentType" validate:"required,enum"`
	Title        string               `json:"title" validate:"required,max=200"`
	File         string               `json:"file" validate:"max=500"`
	Status       model.DocumentStatus `json:"status" validate:"omitempty,enum"`
	Version      int                  `json:"version" validate:"gte=0"`
	Description  string               `json:"description"`
	Deadline     model.Date           `json:"deadline"`
	IsRequired   *bool                `json:"isRequired"`
}

func (in *DocumentInput) apply(d *model.Document) {
	d.DocumentType = in.DocumentType
	d.Title = strings.TrimSpace(in.Title)
	d.File = strings.TrimSpace(in.File)
	d.Description = in.Description
	d.Deadline = in.Deadline
	if in.Status != "" {
		d.Status = in.Status
	}
	if in.Version > 0 {
		d.Version = in.Version
	}
	if in.IsRequired != nil {
		d.IsRequired = *in.IsRequired
	}
}

// AddDocument attaches a document to one of the user's trackers. Status
// defaults to draft, version to 1 and is_required to true.
func (s *TrackerService) AddDocument(ctx context.Context, userID, trackerID string, in DocumentInput) (*model.Document, error) {
	if _, err := s.trackers.Get(ctx, userID, trackerID); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return nil, err
	}

	d := &model.Document{
		TrackerID:  trackerID,
		Status:     model.DocStatusDraft,
		Version:    1,
		IsRequired: true,
	}
	in.apply(d)
	if err := s.trackers.CreateDocument(ctx, d); err != nil {
		return nil, fmt.Errorf("adding document to application %s: %w", trackerID, err)
	}
	return d, nil
}

// UpdateDocument edits a document. The version only changes when the input
// carries one.
func (s *TrackerService) UpdateDocument(ctx context.Context, userID, trackerID, docID string, in DocumentInput) (*model.Document, error) {
	if _, err := s.trackers.Get(ctx, userID, trackerID); err != nil {
		return nil, err
	}
	d, err := s.trackers.GetDocument(ctx, trackerID, docID)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return nil, err
	}

	in.apply(d)
	if err := s.trackers.UpdateDocument(ctx, d); err != nil {
		return nil, fmt.Errorf("updating document %s: %w", docID, err)
	}
	return d, nil
}

func (s *TrackerService) DeleteDocument(ctx context.Context, userID, trackerID, docID string) error {
	if _, err := s.trackers.Get(ctx, userID, trackerID); err != nil {
		return err
	}
	return s.trackers.DeleteDocument(ctx, trackerID, docID)
}

// ===== EMAIL LOG =====

type EmailInput struct {
	TrackerID      *string         `json:"trackerId"`
	EmailType      model.EmailType `json:"emailType" validate:"required,enum"`
	TemplateID     *string         `json:"templateId"`
	RecipientEmail string          `json:"recipientEmail" validate:"required,email"`
	RecipientName  string          `json:"recipientName" validate:"max=200"`
	Subject        string          `json:"subject" validate:"required,max=300"`
	Body           string          `json:"body" validate:"required"`
	Notes          string          `json:"notes"`
}

func blankToNil(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// LogEmail records a sent email. The sent date is set by the store.
func (s *TrackerService) LogEmail(ctx context.Context, userID string, in EmailInput) (*model.EmailLog, error) {
	in.RecipientEmail = strings.TrimSpace(in.RecipientEmail)
	in.Subject = strings.TrimSpace(in.Subject)
	if err := check(in); err != nil {
		return nil, err
	}

	e := &model.EmailLog{
		UserID:         userID,
		TrackerID:      blankToNil(in.TrackerID),
		EmailType:      in.EmailType,
		TemplateID:     blankToNil(in.TemplateID),
		RecipientEmail: in.RecipientEmail,
		RecipientName:  strings.TrimSpace(in.RecipientName),
		Subject:        in.Subject,
		Body:           in.Body,
		Notes:          in.Notes,
	}
	if err := s.trackers.CreateEmail(ctx, e); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("logging email for user %s: %w", userID, err)
	}

	s.metrics.EmailLogged()
	s.logger.Info("email logged",
		slog.String("userID", userID),
		slog.String("emailID", e.ID),
		slog.String("type", string(e.EmailType)),
	)
	return e, nil
}

type EmailQuery struct {
	TrackerID string
	Page      int
}

func (s *TrackerService) Emails(ctx context.Context, userID string, q EmailQuery) (model.Page[model.EmailLog], error) {
	page, opts := pageOptions(q.Page, EmailsPageSize)
	items, total, err := s.trackers.ListEmails(ctx, repository.EmailFilter{
		UserID:      userID,
		TrackerID:   strings.TrimSpace(q.TrackerID),
		ListOptions: opts,
	})
	if err != nil {
		return model.Page[model.EmailLog]{}, fmt.Errorf("listing emails of user %s: %w", userID, err)
	}
	return model.NewPage(items, page, EmailsPageSize, total), nil
}

type ResponseInput struct {
	ResponseReceived bool       `json:"responseReceived"`
	ResponseDate     model.Date `json:"responseDate"`
	Notes            *string    `json:"notes"`
}

// RecordResponse marks whether a reply arrived. Notes are kept unless the
// input carries new ones.
func (s *TrackerService) RecordResponse(ctx context.Context, userID, emailID string, in ResponseInput) (*model.EmailLog, error) {
	e, err := s.trackers.GetEmail(ctx, userID, emailID)
	if err != nil {
		return nil, err
	}
	e.ResponseReceived = in.ResponseReceived
	e.ResponseDate = in.ResponseDate
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	if err := s.trackers.UpdateEmailResponse(ctx, e); err != nil {
		return nil, fmt.Errorf("recording response to email %s: %w", emailID, err)
	}
	return e, nil
}
