package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

var _ repository.ResumeRepository = (*ResumeStore)(nil)

// ResumeStore persists resumes, their sections and the CV templates.
type ResumeStore struct {
	conn *sql.DB
}

var resumeFields = []string{
	"id", "user_id", "template_id", "title", "target_country", "target_field", "full_name",
	"kurdish_name", "email", "phone", "address", "website", "linkedin",
	"professional_summary", "objective", "is_primary", "created_at", "updated_at",
}

func resumeDest(r *model.Resume) []any {
	return []any{
		&r.ID, &r.UserID, &r.TemplateID, &r.Title, &r.TargetCountry, &r.TargetField, &r.FullName,
		&r.KurdishName, &r.Email, &r.Phone, &r.Address, &r.Website, &r.LinkedIn,
		&r.ProfessionalSummary, &r.Objective, &r.IsPrimary, &r.CreatedAt, &r.UpdatedAt,
	}
}

// clearPrimary keeps at most one primary resume per user.
func clearPrimary(ctx context.Context, tx *sql.Tx, r *model.Resume) error {
	if !r.IsPrimary {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE resumes SET is_primary = 0 WHERE user_id = ? AND id <> ?`, r.UserID, r.ID)
	return err
}

func (s *ResumeStore) Create(ctx context.Context, r *model.Resume) error {
	r.ID = newID()
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt
	return withTx(ctx, s.conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO resumes (`+columns("", resumeFields)+`) VALUES (`+placeholders(len(resumeFields))+`)`,
			values(resumeDest(r))...)
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperror.ValidationFailed("template", "unknown template")
			}
			return fmt.Errorf("sqlite: creating resume for user %s: %w", r.UserID, err)
		}
		if err := clearPrimary(ctx, tx, r); err != nil {
			return fmt.Errorf("sqlite: clearing primary resume: %w", err)
		}
		return nil
	})
}

func (s *ResumeStore) Get(ctx context.Context, userID, id string) (*model.Resume, error) {
	var r model.Resume
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", resumeFields)+` FROM resumes WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(resumeDest(&r)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("resume", id)
		}
		return nil, fmt.Errorf("sqlite: getting resume %s: %w", id, err)
	}
	return &r, nil
}

func (s *ResumeStore) List(ctx context.Context, userID string) ([]model.Resume, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", resumeFields)+` FROM resumes WHERE user_id = ?
		 ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing resumes: %w", err)
	}
	defer rows.Close()
	var out []model.Resume
	for rows.Next() {
		var r model.Resume
		if err := rows.Scan(resumeDest(&r)...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning resume: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ResumeStore) Update(ctx context.Context, r *model.Resume) error {
	r.UpdatedAt = now()
	return withTx(ctx, s.conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE resumes SET template_id = ?, title = ?, target_country = ?, target_field = ?,
				full_name = ?, kurdish_name = ?, email = ?, phone = ?, address = ?, website = ?,
				linkedin = ?, professional_summary = ?, objective = ?, is_primary = ?, updated_at = ?
			 WHERE id = ? AND user_id = ?`,
			r.TemplateID, r.Title, r.TargetCountry, r.TargetField,
			r.FullName, r.KurdishName, r.Email, r.Phone, r.Address, r.Website,
			r.LinkedIn, r.ProfessionalSummary, r.Objective, r.IsPrimary, r.UpdatedAt,
			r.ID, r.UserID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperror.ValidationFailed("template", "unknown template")
			}
			return fmt.Errorf("sqlite: updating resume %s: %w", r.ID, err)
		}
		if err := expectOne(res, apperror.NotFound("resume", r.ID)); err != nil {
			return err
		}
		if err := clearPrimary(ctx, tx, r); err != nil {
			return fmt.Errorf("sqlite: clearing primary resume: %w", err)
		}
		return nil
	})
}

// Delete removes the resume and every section item.
func (s *ResumeStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM resumes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting resume %s: %w", id, err)
	}
	return expectOne(res, apperror.NotFound("resume", id))
}

// ===== SECTIONS =====

// section describes one sub-collection table. The first two fields are
// always id and resume_id.
type section struct {
	table    string
	resource string
	fields   []string
	order    string
}

var sections = map[model.ResumeSection]section{
	model.SectionEducation: {
		table:    "resume_education",
		resource: "education",
		fields: []string{
			"id", "resume_id", "degree_level", "degree_title", "field_of_study", "institution_name",
			"institution_city", "institution_country", "start_date", "end_date", "is_current", "gpa",
			"thesis_title", "supervisor", "description", "achievements", "display_order",
		},
		// Entries without an end date are ongoing and come first.
		order: "end_date IS NULL DESC, end_date DESC, start_date DESC, display_order",
	},
	model.SectionExperience: {
		table:    "resume_experience",
		resource: "experience",
		fields: []string{
			"id", "resume_id", "experience_type", "job_title", "company_name", "company_city",
			"company_country", "start_date", "end_date", "is_current", "description",
			"achievements", "skills_used", "display_order",
		},
		order: "end_date IS NULL DESC, end_date DESC, start_date DESC, display_order",
	},
	model.SectionSkills: {
		table:    "resume_skills",
		resource: "skill",
		fields: []string{
			"id", "resume_id", "category", "name", "proficiency", "description",
			"years_of_experience", "display_order",
		},
		order: "category, display_order, name",
	},
	model.SectionPublications: {
		table:    "resume_publications",
		resource: "publication",
		fields: []string{
			"id", "resume_id", "publication_type", "title", "authors", "publication_venue",
			"publication_date", "volume", "issue", "pages", "doi", "url", "abstract", "keywords",
			"display_order",
		},
		order: "publication_date IS NULL DESC, publication_date DESC, display_order",
	},
	model.SectionAwards: {
		table:    "resume_awards",
		resource: "award",
		fields: []string{
			"id", "resume_id", "award_type", "title", "issuing_organization", "date_received",
			"description", "display_order",
		},
		order: "date_received DESC, display_order",
	},
}

func educationDest(e *model.Education) []any {
	return []any{
		&e.ID, &e.ResumeID, &e.DegreeLevel, &e.DegreeTitle, &e.FieldOfStudy, &e.InstitutionName,
		&e.InstitutionCity, &e.InstitutionCountry, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.GPA,
		&e.ThesisTitle, &e.Supervisor, &e.Description, &e.Achievements, &e.DisplayOrder,
	}
}

func experienceDest(e *model.Experience) []any {
	return []any{
		&e.ID, &e.ResumeID, &e.ExperienceType, &e.JobTitle, &e.CompanyName, &e.CompanyCity,
		&e.CompanyCountry, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description,
		&e.Achievements, &e.SkillsUsed, &e.DisplayOrder,
	}
}

func skillDest(s *model.Skill) []any {
	return []any{
		&s.ID, &s.ResumeID, &s.Category, &s.Name, &s.Proficiency, &s.Description,
		&s.YearsOfExperience, &s.DisplayOrder,
	}
}

func publicationDest(p *model.Publication) []any {
	return []any{
		&p.ID, &p.ResumeID, &p.PublicationType, &p.Title, &p.Authors, &p.PublicationVenue,
		&p.PublicationDate, &p.Volume, &p.Issue, &p.Pages, &p.DOI, &p.URL, &p.Abstract, &p.Keywords,
		&p.DisplayOrder,
	}
}

func awardDest(a *model.Award) []any {
	return []any{
		&a.ID, &a.ResumeID, &a.AwardType, &a.Title, &a.IssuingOrganization, &a.DateReceived,
		&a.Description, &a.DisplayOrder,
	}
}

// save inserts the item when *id is empty and updates it otherwise. dest
// must follow sec.fields.
func (s *ResumeStore) save(ctx context.Context, sec section, id *string, resumeID string, dest []any) error {
	if *id == "" {
		*id = newID()
		_, err := s.conn.ExecContext(ctx,
			`INSERT INTO `+sec.table+` (`+columns("", sec.fields)+`) VALUES (`+placeholders(len(sec.fields))+`)`,
			values(dest)...)
		if err != nil {
			*id = ""
			if isForeignKeyViolation(err) {
				return apperror.NotFound("resume", resumeID)
			}
			return fmt.Errorf("sqlite: adding %s to resume %s: %w", sec.resource, resumeID, err)
		}
		return s.touch(ctx, resumeID)
	}

	sets := make([]string, 0, len(sec.fields)-2)
	for _, f := range sec.fields[2:] {
		sets = append(sets, f+" = ?")
	}
	args := append(values(dest[2:]), *id, resumeID)
	res, err := s.conn.ExecContext(ctx,
		`UPDATE `+sec.table+` SET `+strings.Join(sets, ", ")+` WHERE id = ? AND resume_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating %s %s: %w", sec.resource, *id, err)
	}
	if err := expectOne(res, apperror.NotFound(sec.resource, *id)); err != nil {
		return err
	}
	return s.touch(ctx, resumeID)
}

// touch bumps the resume's updated_at after a section change.
func (s *ResumeStore) touch(ctx context.Context, resumeID string) error {
	if _, err := s.conn.ExecContext(ctx, `UPDATE resumes SET updated_at = ? WHERE id = ?`, now(), resumeID); err != nil {
		return fmt.Errorf("sqlite: touching resume %s: %w", resumeID, err)
	}
	return nil
}

func (s *ResumeStore) SaveEducation(ctx context.Context, e *model.Education) error {
	return s.save(ctx, sections[model.SectionEducation], &e.ID, e.ResumeID, educationDest(e))
}

func (s *ResumeStore) SaveExperience(ctx context.Context, e *model.Experience) error {
	return s.save(ctx, sections[model.SectionExperience], &e.ID, e.ResumeID, experienceDest(e))
}

func (s *ResumeStore) SaveSkill(ctx context.Context, sk *model.Skill) error {
	return s.save(ctx, sections[model.SectionSkills], &sk.ID, sk.ResumeID, skillDest(sk))
}

func (s *ResumeStore) SavePublication(ctx context.Context, p *model.Publication) error {
	return s.save(ctx, sections[model.SectionPublications], &p.ID, p.ResumeID, publicationDest(p))
}

func (s *ResumeStore) SaveAward(ctx context.Context, a *model.Award) error {
	return s.save(ctx, sections[model.SectionAwards], &a.ID, a.ResumeID, awardDest(a))
}

func (s *ResumeStore) DeleteSectionItem(ctx context.Context, name model.ResumeSection, resumeID, id string) error {
	sec, ok := sections[name]
	if !ok {
		return apperror.NotFound("section", string(name))
	}
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM `+sec.table+` WHERE id = ? AND resume_id = ?`, id, resumeID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting %s %s: %w", sec.resource, id, err)
	}
	if err := expectOne(res, apperror.NotFound(sec.resource, id)); err != nil {
		return err
	}
	return s.touch(ctx, resumeID)
}

// scanSection runs the ordered select for one section and hands each row's
// destinations out through next.
func (s *ResumeStore) scanSection(ctx context.Context, name model.ResumeSection, resumeID string, next func() []any) error {
	sec := sections[name]
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", sec.fields)+` FROM `+sec.table+` WHERE resume_id = ? ORDER BY `+sec.order,
		resumeID)
	if err != nil {
		return fmt.Errorf("sqlite: listing %s of resume %s: %w", name, resumeID, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := rows.Scan(next()...); err != nil {
			return fmt.Errorf("sqlite: scanning %s: %w", sec.resource, err)
		}
	}
	return rows.Err()
}

// Sections loads every section of the resume. Resume and Template of the
// result are left for the caller.
func (s *ResumeStore) Sections(ctx context.Context, resumeID string) (*model.ResumeDetail, error) {
	d := &model.ResumeDetail{
		Education:    []model.Education{},
		Experience:   []model.Experience{},
		Skills:       []model.Skill{},
		Publications: []model.Publication{},
		Awards:       []model.Award{},
	}

	// Each callback appends a zero item and returns pointers into it. The
	// pointers stay valid until the next append, which only happens after
	// Scan has filled them.
	steps := []struct {
		name model.ResumeSection
		next func() []any
	}{
		{model.SectionEducation, func() []any {
			d.Education = append(d.Education, model.Education{})
			return educationDest(&d.Education[len(d.Education)-1])
		}},
		{model.SectionExperience, func() []any {
			d.Experience = append(d.Experience, model.Experience{})
			return experienceDest(&d.Experience[len(d.Experience)-1])
		}},
		{model.SectionSkills, func() []any {
			d.Skills = append(d.Skills, model.Skill{})
			return skillDest(&d.Skills[len(d.Skills)-1])
		}},
		{model.SectionPublications, func() []any {
			d.Publications = append(d.Publications, model.Publication{})
			return publicationDest(&d.Publications[len(d.Publications)-1])
		}},
		{model.SectionAwards, func() []any {
			d.Awards = append(d.Awards, model.Award{})
			return awardDest(&d.Awards[len(d.Awards)-1])
		}},
	}
	for _, step := range steps {
		if err := s.scanSection(ctx, step.name, resumeID, step.next); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ===== CV TEMPLATES =====

var cvTemplateFields = []string{
	"id", "name", "template_type", "country_style", "description", "sections_order",
	"formatting_guidelines", "is_active", "created_at",
}

func cvTemplateDest(t *model.CVTemplate) []any {
	return []any{
		&t.ID, &t.Name, &t.TemplateType, &t.CountryStyle, &t.Description, &t.SectionsOrder,
		&t.FormattingGuidelines, &t.IsActive, &t.CreatedAt,
	}
}

func (s *ResumeStore) ListCVTemplates(ctx context.Context) ([]model.CVTemplate, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", cvTemplateFields)+` FROM cv_templates WHERE is_active = 1
		 ORDER BY country_style, template_type, name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing cv templates: %w", err)
	}
	defer rows.Close()
	var out []model.CVTemplate
	for rows.Next() {
		var t model.CVTemplate
		if err := rows.Scan(cvTemplateDest(&t)...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning cv template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetCVTemplate returns a template whether or not it is active, so resumes
// keep rendering after their template is retired.
func (s *ResumeStore) GetCVTemplate(ctx context.Context, id string) (*model.CVTemplate, error) {
	var t model.CVTemplate
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", cvTemplateFields)+` FROM cv_templates WHERE id = ?`, id,
	).Scan(cvTemplateDest(&t)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("cv template", id)
		}
		return nil, fmt.Errorf("sqlite: getting cv template %s: %w", id, err)
	}
	return &t, nil
}

// UpsertCVTemplate stores t keyed by name.
func (s *ResumeStore) UpsertCVTemplate(ctx context.Context, t *model.CVTemplate) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}
	id, err := upsert(ctx, s.conn, "cv_templates", []string{"name"}, cvTemplateFields, values(cvTemplateDest(t)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting cv template %q: %w", t.Name, err)
	}
	t.ID = id
	return nil
}
