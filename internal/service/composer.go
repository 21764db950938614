package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

// Sample values shown next to a template so students can see how the
// placeholders read. The server never fills a template in.
const (
	sampleName       = "Your Name"
	sampleUniversity = "Sample University"
	sampleProfessor  = "Professor Smith"
	sampleProgram    = "Master of Science"
	sampleField      = "Computer Science"
)

// ComposerService serves email templates and communication tips, and the
// communications dashboard that ties them to the user's applications.
type ComposerService struct {
	composer repository.ComposerRepository
	trackers repository.TrackerRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewComposerService(
	composer repository.ComposerRepository,
	trackers repository.TrackerRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ComposerService {
	return &ComposerService{composer: composer, trackers: trackers, users: users, logger: logger}
}

type TemplateQuery struct {
	Type      model.TemplateType
	Formality model.Formality
}

func (s *ComposerService) Templates(ctx context.Context, q TemplateQuery) ([]model.EmailTemplate, error) {
	items, err := s.composer.ListTemplates(ctx, repository.TemplateFilter{Type: q.Type, Formality: q.Formality})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	if items == nil {
		items = []model.EmailTemplate{}
	}
	localizeAll(ctx, items)
	return items, nil
}

type TemplateDetail struct {
	Template        *model.EmailTemplate `json:"template"`
	SampleVariables map[string]string    `json:"sampleVariables"`
}

// Template returns an active template with sample placeholder values. The
// name sample is the caller's full name when userID is set.
func (s *ComposerService) Template(ctx context.Context, id, userID string) (*TemplateDetail, error) {
	tpl, err := s.composer.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	localize(ctx, tpl)

	name := sampleName
	if userID != "" {
		u, err := s.users.GetByID(ctx, userID)
		switch {
		case err == nil:
			name = u.FullName()
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("template %s: %w", id, err)
		}
	}

	return &TemplateDetail{
		Template: tpl,
		SampleVariables: map[string]string{
			"name":       name,
			"university": sampleUniversity,
			"professor":  sampleProfessor,
			"program":    sampleProgram,
			"field":      sampleField,
		},
	}, nil
}

type ComposeView struct {
	Selected  *model.EmailTemplate  `json:"selectedTemplate"`
	Templates []model.EmailTemplate `json:"templates"`
}

// Compose returns every active template and, when templateID names an
// active one, that template as the selection. An unknown ID selects nothing.
func (s *ComposerService) Compose(ctx context.Context, templateID string) (*ComposeView, error) {
	templates, err := s.Templates(ctx, TemplateQuery{})
	if err != nil {
		return nil, err
	}
	v := &ComposeView{Templates: templates}

	if templateID = strings.TrimSpace(templateID); templateID != "" {
		tpl, err := s.composer.GetTemplate(ctx, templateID)
		switch {
		case err == nil:
			localize(ctx, tpl)
			v.Selected = tpl
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("compose with template %s: %w", templateID, err)
		}
	}
	return v, nil
}

func (s *ComposerService) Tips(ctx context.Context, tipContext model.TipContext) ([]model.CommunicationTip, error) {
	items, err := s.composer.ListTips(ctx, repository.TipFilter{Context: tipContext})
	if err != nil {
		return nil, fmt.Errorf("listing tips: %w", err)
	}
	if items == nil {
		items = []model.CommunicationTip{}
	}
	localizeAll(ctx, items)
	return items, nil
}

type CommunicationsDashboard struct {
	RecentApplications []model.Tracker          `json:"recentApplications"`
	RecentEmails       []model.EmailLog         `json:"recentEmails"`
	PendingCount       int                      `json:"pendingApplications"`
	Tips               []model.CommunicationTip `json:"tips"`
}

// Dashboard summarizes the user's communications: the five most recently
// updated applications and emails, how many applications are still pending,
// and the top tips.
func (s *ComposerService) Dashboard(ctx context.Context, userID string) (*CommunicationsDashboard, error) {
	var (
		d   CommunicationsDashboard
		err error
	)
	if d.RecentApplications, _, err = s.trackers.List(ctx, repository.TrackerFilter{
		UserID:      userID,
		Sort:        repository.SortByRecent,
		ListOptions: repository.ListOptions{Limit: recentItems},
	}); err != nil {
		return nil, fmt.Errorf("communications dashboard: %w", err)
	}
	if d.RecentEmails, _, err = s.trackers.ListEmails(ctx, repository.EmailFilter{
		UserID:      userID,
		ListOptions: repository.ListOptions{Limit: recentItems},
	}); err != nil {
		return nil, fmt.Errorf("communications dashboard: %w", err)
	}
	if d.PendingCount, err = s.trackers.CountByStatus(ctx, userID, model.PendingStatuses); err != nil {
		return nil, fmt.Errorf("communications dashboard: %w", err)
	}
	if d.Tips, err = s.composer.ListTips(ctx, repository.TipFilter{Limit: communicationTipsPreview}); err != nil {
		return nil, fmt.Errorf("communications dashboard: %w", err)
	}

	if d.RecentApplications == nil {
		d.RecentApplications = []model.Tracker{}
	}
	if d.RecentEmails == nil {
		d.RecentEmails = []model.EmailLog{}
	}
	if d.Tips == nil {
		d.Tips = []model.CommunicationTip{}
	}
	localizeTrackers(ctx, d.RecentApplications)
	localizeAll(ctx, d.Tips)
	return &d, nil
}
