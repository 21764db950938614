package service

// ResumeService is the business logic layer for the CV builder:
//
//	ResumeHandler (HTTP) → ResumeService (business rules) → ResumeRepository (DB)
//
// A resume is a header row plus five ordered sections. Section items are
// always written through the owning resume: the service loads the resume
// with the caller's user ID first, then writes the item under that resume's
// ID, so the path decides where an item lands, never the request body.

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

type ResumeService struct {
	resumes repository.ResumeRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

func NewResumeService(resumes repository.ResumeRepository, users repository.UserRepository, logger *slog.Logger) *ResumeService {
	return &ResumeService{resumes: resumes, users: users, logger: logger}
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]model.Resume, error) {
	items, err := s.resumes.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing resumes of user %s: %w", userID, err)
	}
	if items == nil {
		items = []model.Resume{}
	}
	return items, nil
}

type CreateResumeInput struct {
	Title         string  `json:"title" validate:"required,max=200"`
	TargetCountry string  `json:"targetCountry" validate:"max=100"`
	TargetField   string  `json:"targetField" validate:"max=200"`
	TemplateID    *string `json:"templateId"`
}

// Create starts a resume with the contact details copied from the account.
func (s *ResumeService) Create(ctx context.Context, userID string, in CreateResumeInput) (*model.Resume, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := &model.Resume{
		UserID:        userID,
		TemplateID:    blankToNil(in.TemplateID),
		Title:         in.Title,
		TargetCountry: strings.TrimSpace(in.TargetCountry),
		TargetField:   strings.TrimSpace(in.TargetField),
		FullName:      u.FullName(),
		KurdishName:   u.KurdishName,
		Email:         u.Email,
		Phone:         u.PhoneNumber,
	}
	if err := s.resumes.Create(ctx, r); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("creating resume for user %s: %w", userID, err)
	}
	s.logger.Info("resume created", slog.String("userID", userID), slog.String("resumeID", r.ID))
	return r, nil
}

// Detail returns the resume with every section. A template that has since
// been removed is left out rather than failing the request.
func (s *ResumeService) Detail(ctx context.Context, userID, id string) (*model.ResumeDetail, error) {
	r, err := s.resumes.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d, err := s.resumes.Sections(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("resume %s: %w", id, err)
	}
	d.Resume = r

	if r.TemplateID != nil {
		tpl, err := s.resumes.GetCVTemplate(ctx, *r.TemplateID)
		switch {
		case err == nil:
			d.Template = tpl
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("resume %s template: %w", id, err)
		}
	}
	return d, nil
}

type UpdateResumeInput struct {
	Title               string  `json:"title" validate:"required,max=200"`
	TargetCountry       string  `json:"targetCountry" validate:"max=100"`
	TargetField         string  `json:"targetField" validate:"max=200"`
	TemplateID          *string `json:"templateId"`
	FullName            string  `json:"fullName" validate:"required,max=200"`
	KurdishName         string  `json:"kurdishName" validate:"max=200"`
	Email               string  `json:"email" validate:"required,email"`
	Phone               string  `json:"phone" validate:"max=20"`
	Address             string  `json:"address"`
	Website             string  `json:"website" validate:"omitempty,url"`
	LinkedIn            string  `json:"linkedin" validate:"omitempty,url"`
	ProfessionalSummary string  `json:"professionalSummary"`
	Objective           string  `json:"objective"`
	IsPrimary           bool    `json:"isPrimary"`
}

func (s *ResumeService) Update(ctx context.Context, userID, id string, in UpdateResumeInput) (*model.Resume, error) {
	r, err := s.resumes.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Website = strings.TrimSpace(in.Website)
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	if err := check(in); err != nil {
		return nil, err
	}

	r.Title = in.Title
	r.TargetCountry = strings.TrimSpace(in.TargetCountry)
	r.TargetField = strings.TrimSpace(in.TargetField)
	r.TemplateID = blankToNil(in.TemplateID)
	r.FullName = in.FullName
	r.KurdishName = strings.TrimSpace(in.KurdishName)
	r.Email = in.Email
	r.Phone = strings.TrimSpace(in.Phone)
	r.Address = in.Address
	r.Website = in.Website
	r.LinkedIn = in.LinkedIn
	r.ProfessionalSummary = in.ProfessionalSummary
	r.Objective = in.Objective
	r.IsPrimary = in.IsPrimary

	if err := s.resumes.Update(ctx, r); err != nil {
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("updating resume %s: %w", id, err)
	}
	return r, nil
}

func (s *ResumeService) Delete(ctx context.Context, userID, id string) error {
	if err := s.resumes.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("resume deleted", slog.String("userID", userID), slog.String("resumeID", id))
	return nil
}

// ===== SECTIONS =====

// owned returns the resume id once userID is confirmed as its owner.
func (s *ResumeService) owned(ctx context.Context, userID, resumeID string) (string, error) {
	r, err := s.resumes.Get(ctx, userID, resumeID)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

// saveItem is the shared path of the section writes: ownership, then
// validation, then the store call. itemID empty means insert.
func saveItem[T any](ctx context.Context, s *ResumeService, userID, resumeID, itemID string, item *T,
	bind func(*T, string, string), save func(context.Context, *T) error,
) (*T, error) {
	rid, err := s.owned(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	bind(item, rid, itemID)
	if err := check(item); err != nil {
		return nil, err
	}
	if err := save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ResumeService) SaveEducation(ctx context.Context, userID, resumeID, itemID string, e model.Education) (*model.Education, error) {
	return saveItem(ctx, s, userID, resumeID, itemID, &e, func(e *model.Education, rid, id string) {
		e.ResumeID, e.ID = rid, id
		e.DegreeTitle = strings.TrimSpace(e.DegreeTitle)
		e.FieldOfStudy = strings.TrimSpace(e.FieldOfStudy)
		e.InstitutionName = strings.TrimSpace(e.InstitutionName)
		e.GPA = strings.TrimSpace(e.GPA)
	}, s.resumes.SaveEducation)
}

func (s *ResumeService) SaveExperience(ctx context.Context, userID, resumeID, itemID string, e model.Experience) (*model.Experience, error) {
	return saveItem(ctx, s, userID, resumeID, itemID, &e, func(e *model.Experience, rid, id string) {
		e.ResumeID, e.ID = rid, id
		e.JobTitle = strings.TrimSpace(e.JobTitle)
		e.CompanyName = strings.TrimSpace(e.CompanyName)
	}, s.resumes.SaveExperience)
}

func (s *ResumeService) SaveSkill(ctx context.Context, userID, resumeID, itemID string, sk model.Skill) (*model.Skill, error) {
	return saveItem(ctx, s, userID, resumeID, itemID, &sk, func(sk *model.Skill, rid, id string) {
		sk.ResumeID, sk.ID = rid, id
		sk.Name = strings.TrimSpace(sk.Name)
	}, s.resumes.SaveSkill)
}

func (s *ResumeService) SavePublication(ctx context.Context, userID, resumeID, itemID string, p model.Publication) (*model.Publication, error) {
	return saveItem(ctx, s, userID, resumeID, itemID, &p, func(p *model.Publication, rid, id string) {
		p.ResumeID, p.ID = rid, id
		p.Title = strings.TrimSpace(p.Title)
		p.Authors = strings.TrimSpace(p.Authors)
		p.URL = strings.TrimSpace(p.URL)
	}, s.resumes.SavePublication)
}

func (s *ResumeService) SaveAward(ctx context.Context, userID, resumeID, itemID string, a model.Award) (*model.Award, error) {
	return saveItem(ctx, s, userID, resumeID, itemID, &a, func(a *model.Award, rid, id string) {
		a.ResumeID, a.ID = rid, id
		a.Title = strings.TrimSpace(a.Title)
		a.IssuingOrganization = strings.TrimSpace(a.IssuingOrganization)
	}, s.resumes.SaveAward)
}

func (s *ResumeService) DeleteSectionItem(ctx context.Context, userID, resumeID string, section model.ResumeSection, itemID string) error {
	if !section.Valid() {
		return apperror.NotFound("section", string(section))
	}
	rid, err := s.owned(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	return s.resumes.DeleteSectionItem(ctx, section, rid, itemID)
}

// ===== TEMPLATES =====

func (s *ResumeService) CVTemplates(ctx context.Context) ([]model.CVTemplate, error) {
	items, err := s.resumes.ListCVTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing CV templates: %w", err)
	}
	if items == nil {
		items = []model.CVTemplate{}
	}
	return items, nil
}

type BuilderView struct {
	Resume    *model.Resume      `json:"resume,omitempty"`
	Templates []model.CVTemplate `json:"templates"`
}

// Builder returns the template gallery and, when resumeID names one of the
// user's resumes, that resume. A foreign or unknown ID is ignored.
func (s *ResumeService) Builder(ctx context.Context, userID, resumeID string) (*BuilderView, error) {
	templates, err := s.CVTemplates(ctx)
	if err != nil {
		return nil, err
	}
	v := &BuilderView{Templates: templates}

	if resumeID = strings.TrimSpace(resumeID); resumeID != "" {
		r, err := s.resumes.Get(ctx, userID, resumeID)
		switch {
		case err == nil:
			v.Resume = r
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("resume builder: %w", err)
		}
	}
	return v, nil
}
