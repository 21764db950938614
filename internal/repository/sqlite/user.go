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

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

type UserStore struct {
	conn *sql.DB
}

const userColumns = `id, username, email, password_hash, github_id, first_name, last_name,
	kurdish_name, region, current_education_level, preferred_study_level, university_name,
	field_of_study, graduation_year, phone_number, current_city, current_country,
	research_interests, avatar_url, created_at, updated_at`

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.GitHubID, &u.FirstName, &u.LastName,
		&u.KurdishName, &u.Region, &u.CurrentEducationLevel, &u.PreferredStudyLevel, &u.UniversityName,
		&u.FieldOfStudy, &u.GraduationYear, &u.PhoneNumber, &u.CurrentCity, &u.CurrentCountry,
		&u.ResearchInterests, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user, generating its ID and timestamps.
// A taken username or GitHub account yields apperror.ErrConflict.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.GitHubID, u.FirstName, u.LastName,
		u.KurdishName, u.Region, u.CurrentEducationLevel, u.PreferredStudyLevel, u.UniversityName,
		u.FieldOfStudy, u.GraduationYear, u.PhoneNumber, u.CurrentCity, u.CurrentCountry,
		u.ResearchInterests, u.AvatarURL, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", u.Username)
		}
		return fmt.Errorf("sqlite: creating user %q: %w", u.Username, err)
	}
	return nil
}

func (s *UserStore) get(ctx context.Context, key, column string, value any) (*model.User, error) {
	u, err := scanUser(s.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: getting user by %s %s: %w", column, key, err)
	}
	return u, nil
}

// GetByID retrieves a user by their internal ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.get(ctx, id, "id", id)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.get(ctx, username, "username", username)
}

func (s *UserStore) GetByGitHubID(ctx context.Context, githubID int64) (*model.User, error) {
	return s.get(ctx, fmt.Sprint(githubID), "github_id", githubID)
}

// Update saves every editable field of u. Username and password hash are
// included so an account can be linked to GitHub after creation.
func (s *UserStore) Update(ctx context.Context, u *model.User) error {
	u.UpdatedAt = now()
	res, err := s.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, password_hash = ?, github_id = ?,
			first_name = ?, last_name = ?, kurdish_name = ?, region = ?,
			current_education_level = ?, preferred_study_level = ?, university_name = ?,
			field_of_study = ?, graduation_year = ?, phone_number = ?, current_city = ?,
			current_country = ?, research_interests = ?, avatar_url = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.Email, u.PasswordHash, u.GitHubID,
		u.FirstName, u.LastName, u.KurdishName, u.Region,
		u.CurrentEducationLevel, u.PreferredStudyLevel, u.UniversityName,
		u.FieldOfStudy, u.GraduationYear, u.PhoneNumber, u.CurrentCity,
		u.CurrentCountry, u.ResearchInterests, u.AvatarURL, u.UpdatedAt,
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", u.Username)
		}
		return fmt.Errorf("sqlite: updating user %s: %w", u.ID, err)
	}
	return expectOne(res, apperror.NotFound("user", u.ID))
}

// ===== DIALECTS =====

func scanDialects(rows *sql.Rows) ([]model.Dialect, error) {
	defer rows.Close()
	var out []model.Dialect
	for rows.Next() {
		var d model.Dialect
		if err := rows.Scan(&d.ID, &d.Code, &d.NameEnglish, &d.NameSorani, &d.NameKurmanji); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDialects returns every dialect in seed order.
func (s *UserStore) ListDialects(ctx context.Context) ([]model.Dialect, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, code, name_english, name_sorani, name_kurmanji FROM dialects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing dialects: %w", err)
	}
	out, err := scanDialects(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scanning dialects: %w", err)
	}
	return out, nil
}

func (s *UserStore) UserDialects(ctx context.Context, userID string) ([]model.Dialect, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT d.id, d.code, d.name_english, d.name_sorani, d.name_kurmanji
		 FROM dialects d JOIN user_dialects ud ON ud.dialect_id = d.id
		 WHERE ud.user_id = ? ORDER BY d.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing dialects of user %s: %w", userID, err)
	}
	out, err := scanDialects(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scanning dialects of user %s: %w", userID, err)
	}
	return out, nil
}

// SetDialects replaces the user's dialect set in one transaction. An unknown
// code fails the whole call with a validation error.
func (s *UserStore) SetDialects(ctx context.Context, userID string, codes []string) error {
	return withTx(ctx, s.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_dialects WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("sqlite: clearing dialects of user %s: %w", userID, err)
		}
		for _, code := range codes {
			var known int
			if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM dialects WHERE code = ?`, code).Scan(&known); err != nil {
				return fmt.Errorf("sqlite: checking dialect %q: %w", code, err)
			}
			if known == 0 {
				return apperror.ValidationFailed("dialects", fmt.Sprintf("unknown dialect %q", code))
			}
			_, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO user_dialects (user_id, dialect_id)
				 SELECT ?, id FROM dialects WHERE code = ?`, userID, code)
			if err != nil {
				if isForeignKeyViolation(err) {
					return apperror.NotFound("user", userID)
				}
				return fmt.Errorf("sqlite: adding dialect %q to user %s: %w", code, userID, err)
			}
		}
		return nil
	})
}
