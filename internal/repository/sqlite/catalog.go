package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

var _ repository.CatalogRepository = (*CatalogStore)(nil)

// CatalogStore reads countries, universities, programs and scholarships.
// The Upsert methods exist for cmd/seed only.
type CatalogStore struct {
	conn *sql.DB
}

// COLUMN LISTS AND SCAN TARGETS:
// Each entity has its field list and a matching function returning scan
// destinations in the same order. Joined queries concatenate them, e.g. a
// program row is programDest + universityDest + countryDest.

var countryFields = []string{
	"id", "code", "name", "description", "official_language", "currency",
	"academic_year_start", "application_deadlines", "avg_tuition_usd", "avg_living_cost_usd",
	"student_visa_type", "visa_processing_time", "work_permit_allowed", "post_study_work_visa",
	"kurdish_population", "kurdish_organizations", "application_difficulty", "living_quality",
	"study_quality", "is_active", "translations", "created_at", "updated_at",
}

func countryDest(c *model.Country) []any {
	return []any{
		&c.ID, &c.Code, &c.Name, &c.Description, &c.OfficialLanguage, &c.Currency,
		&c.AcademicYearStart, &c.ApplicationDeadlines, &c.AvgTuitionUSD, &c.AvgLivingCostUSD,
		&c.StudentVisaType, &c.VisaProcessingTime, &c.WorkPermitAllowed, &c.PostStudyWorkVisa,
		&c.KurdishPopulation, &c.KurdishOrganizations, &c.ApplicationDifficulty, &c.LivingQuality,
		&c.StudyQuality, &c.IsActive, &c.Translations, &c.CreatedAt, &c.UpdatedAt,
	}
}

var universityFields = []string{
	"id", "country_id", "name", "city", "website", "university_type", "established_year",
	"world_ranking", "national_ranking", "student_population", "international_students",
	"instruction_languages", "international_office_email", "admission_email",
	"kurdish_students_info", "kurdish_friendly_supervisors", "academic_reputation",
	"research_opportunities", "international_support", "is_active", "translations",
	"created_at", "updated_at",
}

func universityDest(u *model.University) []any {
	return []any{
		&u.ID, &u.CountryID, &u.Name, &u.City, &u.Website, &u.UniversityType, &u.EstablishedYear,
		&u.WorldRanking, &u.NationalRanking, &u.StudentPopulation, &u.InternationalStudents,
		&u.InstructionLanguages, &u.InternationalOfficeEmail, &u.AdmissionEmail,
		&u.KurdishStudentsInfo, &u.KurdishFriendlySupervisors, &u.AcademicReputation,
		&u.ResearchOpportunities, &u.InternationalSupport, &u.IsActive, &u.Translations,
		&u.CreatedAt, &u.UpdatedAt,
	}
}

var programFields = []string{
	"id", "university_id", "name", "level", "field_of_study", "duration_months", "credits",
	"language_of_instruction", "min_gpa", "language_requirements", "other_requirements",
	"application_deadline", "start_date", "tuition_fee", "currency", "scholarships_available",
	"description", "career_prospects", "is_active", "translations", "created_at", "updated_at",
}

func programDest(p *model.Program) []any {
	return []any{
		&p.ID, &p.UniversityID, &p.Name, &p.Level, &p.FieldOfStudy, &p.DurationMonths, &p.Credits,
		&p.LanguageOfInstruction, &p.MinGPA, &p.LanguageRequirements, &p.OtherRequirements,
		&p.ApplicationDeadline, &p.StartDate, &p.TuitionFee, &p.Currency, &p.ScholarshipsAvailable,
		&p.Description, &p.CareerProspects, &p.IsActive, &p.Translations, &p.CreatedAt, &p.UpdatedAt,
	}
}

var scholarshipFields = []string{
	"id", "name", "provider", "country_id", "university_id", "scholarship_type", "amount",
	"currency", "eligibility_criteria", "kurdish_specific", "application_deadline",
	"application_process", "required_documents", "website", "contact_email", "description",
	"is_active", "translations", "created_at", "updated_at",
}

func scholarshipDest(s *model.Scholarship) []any {
	return []any{
		&s.ID, &s.Name, &s.Provider, &s.CountryID, &s.UniversityID, &s.ScholarshipType, &s.Amount,
		&s.Currency, &s.EligibilityCriteria, &s.KurdishSpecific, &s.ApplicationDeadline,
		&s.ApplicationProcess, &s.RequiredDocuments, &s.Website, &s.ContactEmail, &s.Description,
		&s.IsActive, &s.Translations, &s.CreatedAt, &s.UpdatedAt,
	}
}

// values dereferences scan destinations so the same list can feed an INSERT.
func values(dest []any) []any {
	out := make([]any, len(dest))
	for i, d := range dest {
		out[i] = derefArg(d)
	}
	return out
}

// ===== COUNTRIES =====

func (s *CatalogStore) queryCountries(ctx context.Context, query string, args ...any) ([]model.Country, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(countryDest(&c)...); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListCountries returns active countries ordered by name.
func (s *CatalogStore) ListCountries(ctx context.Context, f repository.CountryFilter) ([]model.Country, int, error) {
	var w where
	w.add("is_active = 1")
	w.search(f.Search, "name", "description")

	total, err := count(ctx, s.conn, `SELECT COUNT(*) FROM countries`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting countries: %w", err)
	}
	items, err := s.queryCountries(ctx,
		`SELECT `+columns("", countryFields)+` FROM countries`+w.String()+
			` ORDER BY name`+limit(f.ListOptions), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing countries: %w", err)
	}
	return items, total, nil
}

func (s *CatalogStore) GetCountryByCode(ctx context.Context, code string) (*model.Country, error) {
	var c model.Country
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", countryFields)+` FROM countries WHERE code = ? AND is_active = 1`, code,
	).Scan(countryDest(&c)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("country", code)
		}
		return nil, fmt.Errorf("sqlite: getting country %s: %w", code, err)
	}
	return &c, nil
}

// CountriesByIDs returns the active countries among ids, ordered by name.
// Unknown ids are skipped.
func (s *CatalogStore) CountriesByIDs(ctx context.Context, ids []string) ([]model.Country, error) {
	var w where
	w.add("is_active = 1")
	w.in("id", ids)
	items, err := s.queryCountries(ctx,
		`SELECT `+columns("", countryFields)+` FROM countries`+w.String()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting countries by id: %w", err)
	}
	return items, nil
}

func (s *CatalogStore) CountCountries(ctx context.Context) (int, error) {
	n, err := count(ctx, s.conn, `SELECT COUNT(*) FROM countries WHERE is_active = 1`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting countries: %w", err)
	}
	return n, nil
}

// ===== UNIVERSITIES =====

const universityFrom = ` FROM universities u JOIN countries c ON c.id = u.country_id`

func (s *CatalogStore) queryUniversities(ctx context.Context, query string, args ...any) ([]model.University, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.University
	for rows.Next() {
		u := model.University{Country: &model.Country{}}
		if err := rows.Scan(append(universityDest(&u), countryDest(u.Country)...)...); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func universitySelect() string {
	return `SELECT ` + columns("u", universityFields) + `, ` + columns("c", countryFields) + universityFrom
}

// ListUniversities returns active universities with their country, ordered by name.
func (s *CatalogStore) ListUniversities(ctx context.Context, f repository.UniversityFilter) ([]model.University, int, error) {
	var w where
	w.add("u.is_active = 1")
	w.search(f.Search, "u.name", "u.city", "c.name")
	w.eq("c.code", f.CountryCode)
	w.eq("u.country_id", f.CountryID)
	w.eq("u.university_type", string(f.Type))

	total, err := count(ctx, s.conn, `SELECT COUNT(*)`+universityFrom+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting universities: %w", err)
	}
	items, err := s.queryUniversities(ctx,
		universitySelect()+w.String()+` ORDER BY u.name`+limit(f.ListOptions), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing universities: %w", err)
	}
	return items, total, nil
}

func (s *CatalogStore) GetUniversity(ctx context.Context, id string) (*model.University, error) {
	items, err := s.queryUniversities(ctx, universitySelect()+` WHERE u.id = ? AND u.is_active = 1`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting university %s: %w", id, err)
	}
	if len(items) == 0 {
		return nil, apperror.NotFound("university", id)
	}
	return &items[0], nil
}

func (s *CatalogStore) UniversitiesByIDs(ctx context.Context, ids []string) ([]model.University, error) {
	var w where
	w.add("u.is_active = 1")
	w.in("u.id", ids)
	items, err := s.queryUniversities(ctx, universitySelect()+w.String()+` ORDER BY u.name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting universities by id: %w", err)
	}
	return items, nil
}

func (s *CatalogStore) CountUniversities(ctx context.Context) (int, error) {
	n, err := count(ctx, s.conn, `SELECT COUNT(*) FROM universities WHERE is_active = 1`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting universities: %w", err)
	}
	return n, nil
}

// ===== PROGRAMS =====

const programFrom = ` FROM programs p
	JOIN universities u ON u.id = p.university_id
	JOIN countries c ON c.id = u.country_id`

func programSelect() string {
	return `SELECT ` + columns("p", programFields) + `, ` + columns("u", universityFields) +
		`, ` + columns("c", countryFields) + programFrom
}

func (s *CatalogStore) queryPrograms(ctx context.Context, query string, args ...any) ([]model.Program, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Program
	for rows.Next() {
		p := model.Program{University: &model.University{Country: &model.Country{}}}
		dest := programDest(&p)
		dest = append(dest, universityDest(p.University)...)
		dest = append(dest, countryDest(p.University.Country)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPrograms returns active programs ordered by university name, then name.
func (s *CatalogStore) ListPrograms(ctx context.Context, f repository.ProgramFilter) ([]model.Program, int, error) {
	var w where
	w.add("p.is_active = 1")
	w.search(f.Search, "p.name", "p.field_of_study", "u.name")
	w.eq("p.level", string(f.Level))
	if f.Field != "" {
		w.add(`p.field_of_study LIKE ? ESCAPE '\'`, likePattern(f.Field))
	}
	w.eq("u.country_id", f.CountryID)
	w.eq("p.university_id", f.UniversityID)
	if f.ExcludeID != "" {
		w.add("p.id <> ?", f.ExcludeID)
	}

	total, err := count(ctx, s.conn, `SELECT COUNT(*)`+programFrom+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting programs: %w", err)
	}
	items, err := s.queryPrograms(ctx,
		programSelect()+w.String()+` ORDER BY u.name, p.name`+limit(f.ListOptions), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing programs: %w", err)
	}
	return items, total, nil
}

func (s *CatalogStore) GetProgram(ctx context.Context, id string) (*model.Program, error) {
	items, err := s.queryPrograms(ctx, programSelect()+` WHERE p.id = ? AND p.is_active = 1`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting program %s: %w", id, err)
	}
	if len(items) == 0 {
		return nil, apperror.NotFound("program", id)
	}
	return &items[0], nil
}

// ===== SCHOLARSHIPS =====

// ListScholarships returns active scholarships, latest deadline first. Each
// scholarship carries the ids of the programs it is linked to.
func (s *CatalogStore) ListScholarships(ctx context.Context, f repository.ScholarshipFilter) ([]model.Scholarship, int, error) {
	var w where
	w.add("is_active = 1")
	w.search(f.Search, "name", "provider", "description")
	w.eq("scholarship_type", string(f.Type))
	if f.KurdishOnly {
		w.add("kurdish_specific = 1")
	}
	w.eq("country_id", f.CountryID)
	w.eq("university_id", f.UniversityID)

	total, err := count(ctx, s.conn, `SELECT COUNT(*) FROM scholarships`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting scholarships: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", scholarshipFields)+` FROM scholarships`+w.String()+
			` ORDER BY application_deadline DESC, name`+limit(f.ListOptions), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing scholarships: %w", err)
	}
	defer rows.Close()
	var items []model.Scholarship
	for rows.Next() {
		var sc model.Scholarship
		if err := rows.Scan(scholarshipDest(&sc)...); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning scholarship: %w", err)
		}
		items = append(items, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing scholarships: %w", err)
	}
	rows.Close()

	if err := s.loadScholarshipPrograms(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *CatalogStore) loadScholarshipPrograms(ctx context.Context, items []model.Scholarship) error {
	if len(items) == 0 {
		return nil
	}
	index := make(map[string]int, len(items))
	ids := make([]string, len(items))
	for i, sc := range items {
		index[sc.ID] = i
		ids[i] = sc.ID
	}
	var w where
	w.in("scholarship_id", ids)
	rows, err := s.conn.QueryContext(ctx,
		`SELECT scholarship_id, program_id FROM scholarship_programs`+w.String()+
			` ORDER BY scholarship_id, program_id`, w.args...)
	if err != nil {
		return fmt.Errorf("sqlite: loading scholarship programs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sid, pid string
		if err := rows.Scan(&sid, &pid); err != nil {
			return fmt.Errorf("sqlite: scanning scholarship program: %w", err)
		}
		sc := &items[index[sid]]
		sc.ProgramIDs = append(sc.ProgramIDs, pid)
	}
	return rows.Err()
}

// ===== SEEDING =====

// UpsertCountry stores c keyed by its code and sets c.ID to the stored id.
func (s *CatalogStore) UpsertCountry(ctx context.Context, c *model.Country) error {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	id, err := upsert(ctx, s.conn, "countries", []string{"code"}, countryFields, values(countryDest(c)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting country %s: %w", c.Code, err)
	}
	c.ID = id
	return nil
}

// UpsertUniversity stores u keyed by (country, name).
func (s *CatalogStore) UpsertUniversity(ctx context.Context, u *model.University) error {
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	id, err := upsert(ctx, s.conn, "universities", []string{"country_id", "name"}, universityFields, values(universityDest(u)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting university %q: %w", u.Name, err)
	}
	u.ID = id
	return nil
}

// UpsertProgram stores p keyed by (university, name, level).
func (s *CatalogStore) UpsertProgram(ctx context.Context, p *model.Program) error {
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	id, err := upsert(ctx, s.conn, "programs", []string{"university_id", "name", "level"}, programFields, values(programDest(p)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting program %q: %w", p.Name, err)
	}
	p.ID = id
	return nil
}

// UpsertScholarship stores sc keyed by (name, provider) and replaces its
// program links with sc.ProgramIDs.
func (s *CatalogStore) UpsertScholarship(ctx context.Context, sc *model.Scholarship) error {
	stamp(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
	return withTx(ctx, s.conn, func(tx *sql.Tx) error {
		id, err := upsert(ctx, tx, "scholarships", []string{"name", "provider"}, scholarshipFields, values(scholarshipDest(sc)))
		if err != nil {
			return fmt.Errorf("sqlite: upserting scholarship %q: %w", sc.Name, err)
		}
		sc.ID = id
		if _, err := tx.ExecContext(ctx, `DELETE FROM scholarship_programs WHERE scholarship_id = ?`, id); err != nil {
			return fmt.Errorf("sqlite: clearing programs of scholarship %s: %w", id, err)
		}
		for _, pid := range sc.ProgramIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO scholarship_programs (scholarship_id, program_id) VALUES (?, ?)`,
				id, pid); err != nil {
				return fmt.Errorf("sqlite: linking scholarship %s to program %s: %w", id, pid, err)
			}
		}
		return nil
	})
}
