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

var _ repository.ProfileRepository = (*ProfileStore)(nil)

type ProfileStore struct {
	conn *sql.DB
}

const profileColumns = `id, user_id, biography, motivation_letter, gpa, academic_awards,
	publications, work_experience, volunteer_experience, technical_skills, language_skills,
	cv_document, transcripts, certificates, created_at, updated_at`

// GetOrCreate returns the user's profile, inserting an empty one first if
// the user has none.
//
// FETCH-OR-INITIALIZE WITHOUT A RACE:
// A naive "SELECT, then INSERT if missing" lets two concurrent first visits
// both see no row and both insert. Here the INSERT always runs but is a no-op
// when a row already exists (UNIQUE user_id + ON CONFLICT DO NOTHING); the
// SELECT that follows therefore always finds the single row.
func (s *ProfileStore) GetOrCreate(ctx context.Context, userID string) (*model.Profile, error) {
	ts := now()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		newID(), userID, ts, ts,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.NotFound("user", userID)
		}
		return nil, fmt.Errorf("sqlite: initializing profile of user %s: %w", userID, err)
	}

	return s.Get(ctx, userID)
}

// Get returns the user's profile without creating one.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID,
	).Scan(
		&p.ID, &p.UserID, &p.Biography, &p.MotivationLetter, &p.GPA, &p.AcademicAwards,
		&p.Publications, &p.WorkExperience, &p.VolunteerExperience, &p.TechnicalSkills, &p.LanguageSkills,
		&p.CVDocument, &p.Transcripts, &p.Certificates, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("profile", userID)
		}
		return nil, fmt.Errorf("sqlite: getting profile of user %s: %w", userID, err)
	}
	return &p, nil
}

// Update saves the editable fields of the profile owned by p.UserID.
func (s *ProfileStore) Update(ctx context.Context, p *model.Profile) error {
	p.UpdatedAt = now()
	res, err := s.conn.ExecContext(ctx,
		`UPDATE profiles SET biography = ?, motivation_letter = ?, gpa = ?, academic_awards = ?,
			publications = ?, work_experience = ?, volunteer_experience = ?, technical_skills = ?,
			language_skills = ?, cv_document = ?, transcripts = ?, certificates = ?, updated_at = ?
		 WHERE user_id = ?`,
		p.Biography, p.MotivationLetter, p.GPA, p.AcademicAwards,
		p.Publications, p.WorkExperience, p.VolunteerExperience, p.TechnicalSkills,
		p.LanguageSkills, p.CVDocument, p.Transcripts, p.Certificates, p.UpdatedAt,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile of user %s: %w", p.UserID, err)
	}
	return expectOne(res, apperror.NotFound("profile", p.UserID))
}
