package service

// AccountService is the business logic layer for identity:
//
//	AccountHandler (HTTP) → AccountService (business rules) → UserRepository / ProfileRepository (DB)
//	                      ↘ TokenService (JWT), PasswordService (bcrypt)
//
// Two ways in: username/password registration and login, and GitHub OAuth
// when it is configured. Both end in an AuthResult whose token the handler
// puts in the session cookie.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/auth"
	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

// errBadCredentials is deliberately the same for unknown users and wrong
// passwords.
var errBadCredentials = apperror.Unauthorized("invalid username or password")

type AccountService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	trackers  repository.TrackerRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewAccountService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	trackers repository.TrackerRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:     users,
		profiles:  profiles,
		trackers:  trackers,
		tokens:    tokens,
		passwords: passwords,
		metrics:   m,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued JWT so the handler can
// set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

type RegisterInput struct {
	Username              string               `json:"username" validate:"required,max=150,username"`
	Email                 string               `json:"email" validate:"required,email,max=254"`
	Password              string               `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm       string               `json:"passwordConfirm" validate:"required,eqfield=Password"`
	FirstName             string               `json:"firstName" validate:"required,max=150"`
	LastName              string               `json:"lastName" validate:"required,max=150"`
	KurdishName           string               `json:"kurdishName" validate:"max=100"`
	Region                model.Region         `json:"region" validate:"required,enum"`
	FieldOfStudy          string               `json:"fieldOfStudy" validate:"required,max=200"`
	CurrentEducationLevel model.EducationLevel `json:"currentEducationLevel" validate:"required,enum"`
	PreferredStudyLevel   model.EducationLevel `json:"preferredStudyLevel" validate:"required,enum"`
	PhoneNumber           string               `json:"phoneNumber" validate:"max=20"`
	CurrentCity           string               `json:"currentCity" validate:"max=100"`
	CurrentCountry        string               `json:"currentCountry" validate:"max=100"`
}

func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.KurdishName = strings.TrimSpace(in.KurdishName)
	in.FieldOfStudy = strings.TrimSpace(in.FieldOfStudy)
}

// Register validates the form, creates the account and logs the new user in.
// Every failing field is reported at once; nothing is written on failure.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.normalize()
	if err := check(in); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("registering %s: %w", in.Username, err)
	}

	user := &model.User{
		Username:              in.Username,
		Email:                 in.Email,
		PasswordHash:          hash,
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		KurdishName:           in.KurdishName,
		Region:                in.Region,
		CurrentEducationLevel: in.CurrentEducationLevel,
		PreferredStudyLevel:   in.PreferredStudyLevel,
		FieldOfStudy:          in.FieldOfStudy,
		PhoneNumber:           strings.TrimSpace(in.PhoneNumber),
		CurrentCity:           strings.TrimSpace(in.CurrentCity),
		CurrentCountry:        strings.TrimSpace(in.CurrentCountry),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			const msg = "a user with that username already exists"
			return nil, &apperror.AppError{
				Err:     apperror.ErrConflict,
				Message: msg,
				Field:   "username",
				Fields:  map[string]string{"username": msg},
			}
		}
		s.logger.Error("failed to create user",
			slog.String("username", in.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering %s: %w", in.Username, err)
	}

	s.metrics.Registered()
	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)
	return s.issue(user)
}

// Login checks a username/password pair.
func (s *AccountService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errBadCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("logging in %s: %w", username, err)
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			s.logger.Info("failed login", slog.String("username", username))
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("logging in %s: %w", username, err)
	}

	s.metrics.LoggedIn("password")
	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return s.issue(user)
}

// LoginWithGitHub handles the OAuth callback once the handler has exchanged
// the code for a GitHub profile.
//
// The GitHub ID is stable, so it is the lookup key. First login creates an
// account named after the GitHub login (suffixed with the GitHub ID when
// that username is taken); later logins refresh email and avatar.
func (s *AccountService) LoginWithGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error) {
	if gh == nil {
		return nil, fmt.Errorf("github login: GitHub user must not be nil")
	}

	user, err := s.users.GetByGitHubID(ctx, gh.ID)
	switch {
	case err == nil:
		if gh.Email != "" {
			user.Email = gh.Email
		}
		user.AvatarURL = gh.AvatarURL
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("github login (githubID=%d): %w", gh.ID, err)
		}
	case errors.Is(err, apperror.ErrNotFound):
		user, err = s.createGitHubUser(ctx, gh)
		if err != nil {
			return nil, fmt.Errorf("github login (githubID=%d): %w", gh.ID, err)
		}
		s.metrics.Registered()
	default:
		return nil, fmt.Errorf("github login (githubID=%d): %w", gh.ID, err)
	}

	s.metrics.LoggedIn("github")
	s.logger.Info("user authenticated via GitHub",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)
	return s.issue(user)
}

func (s *AccountService) createGitHubUser(ctx context.Context, gh *auth.GitHubUser) (*model.User, error) {
	first, last := gh.FirstAndLastName()
	githubID := gh.ID
	user := &model.User{
		Username:  gh.Login,
		Email:     gh.Email,
		GitHubID:  &githubID,
		FirstName: first,
		LastName:  last,
		AvatarURL: gh.AvatarURL,
	}
	err := s.users.Create(ctx, user)
	if errors.Is(err, apperror.ErrConflict) {
		user.Username = fmt.Sprintf("%s-%d", gh.Login, gh.ID)
		err = s.users.Create(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken returns the user ID a session token encodes.
func (s *AccountService) ValidateToken(token string) (string, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return "", fmt.Errorf("validating token: %w", err)
	}
	return userID, nil
}

// User returns the account with its dialects.
func (s *AccountService) User(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dialects, err := s.users.UserDialects(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading dialects of %s: %w", id, err)
	}
	user.Dialects = dialects
	return user, nil
}

// AccountInput holds the editable base fields of an account. Username and
// password are not editable here.
type AccountInput struct {
	Email                 string               `json:"email" validate:"required,email,max=254"`
	FirstName             string               `json:"firstName" validate:"required,max=150"`
	LastName              string               `json:"lastName" validate:"required,max=150"`
	KurdishName           string               `json:"kurdishName" validate:"max=100"`
	Region                model.Region         `json:"region" validate:"omitempty,enum"`
	CurrentEducationLevel model.EducationLevel `json:"currentEducationLevel" validate:"omitempty,enum"`
	PreferredStudyLevel   model.EducationLevel `json:"preferredStudyLevel" validate:"omitempty,enum"`
	UniversityName        string               `json:"universityName" validate:"max=200"`
	FieldOfStudy          string               `json:"fieldOfStudy" validate:"max=200"`
	GraduationYear        *int                 `json:"graduationYear" validate:"omitempty,gte=1950,lte=2100"`
	PhoneNumber           string               `json:"phoneNumber" validate:"max=20"`
	CurrentCity           string               `json:"currentCity" validate:"max=100"`
	CurrentCountry        string               `json:"currentCountry" validate:"max=100"`
	ResearchInterests     string               `json:"researchInterests"`
}

func (s *AccountService) UpdateAccount(ctx context.Context, userID string, in AccountInput) (*model.User, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Email = strings.TrimSpace(in.Email)
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.KurdishName = strings.TrimSpace(in.KurdishName)
	user.Region = in.Region
	user.CurrentEducationLevel = in.CurrentEducationLevel
	user.PreferredStudyLevel = in.PreferredStudyLevel
	user.UniversityName = strings.TrimSpace(in.UniversityName)
	user.FieldOfStudy = strings.TrimSpace(in.FieldOfStudy)
	user.GraduationYear = in.GraduationYear
	user.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	user.CurrentCity = strings.TrimSpace(in.CurrentCity)
	user.CurrentCountry = strings.TrimSpace(in.CurrentCountry)
	user.ResearchInterests = in.ResearchInterests

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating account %s: %w", userID, err)
	}
	s.logger.Info("account updated", slog.String("userID", userID))
	return user, nil
}

func (s *AccountService) Dialects(ctx context.Context) ([]model.Dialect, error) {
	return s.users.ListDialects(ctx)
}

// SetDialects replaces the user's dialects and returns the new set.
func (s *AccountService) SetDialects(ctx context.Context, userID string, codes []string) ([]model.Dialect, error) {
	if err := s.users.SetDialects(ctx, userID, codes); err != nil {
		return nil, err
	}
	return s.users.UserDialects(ctx, userID)
}

// Profile returns the user's profile, creating it on first access.
func (s *AccountService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile of %s: %w", userID, err)
	}
	return p, nil
}

type ProfileInput struct {
	Biography           string              `json:"biography"`
	MotivationLetter    string              `json:"motivationLetter"`
	GPA                 decimal.NullDecimal `json:"gpa"`
	AcademicAwards      string              `json:"academicAwards"`
	Publications        string              `json:"publications"`
	WorkExperience      string              `json:"workExperience"`
	VolunteerExperience string              `json:"volunteerExperience"`
	TechnicalSkills     string              `json:"technicalSkills"`
	LanguageSkills      string              `json:"languageSkills"`
	CVDocument          string              `json:"cvDocument" validate:"max=255"`
	Transcripts         string              `json:"transcripts" validate:"max=255"`
	Certificates        string              `json:"certificates" validate:"max=255"`
}

var maxGPA = decimal.RequireFromString("99.99")

func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	fields := fieldErrors(in)
	fields = checkDecimal(fields, "gpa", in.GPA, decimal.Zero, maxGPA)
	if len(fields) > 0 {
		return nil, apperror.Invalid(fields)
	}

	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile of %s: %w", userID, err)
	}
	p.Biography = in.Biography
	p.MotivationLetter = in.MotivationLetter
	p.GPA = in.GPA
	p.AcademicAwards = in.AcademicAwards
	p.Publications = in.Publications
	p.WorkExperience = in.WorkExperience
	p.VolunteerExperience = in.VolunteerExperience
	p.TechnicalSkills = in.TechnicalSkills
	p.LanguageSkills = in.LanguageSkills
	p.CVDocument = strings.TrimSpace(in.CVDocument)
	p.Transcripts = strings.TrimSpace(in.Transcripts)
	p.Certificates = strings.TrimSpace(in.Certificates)

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating profile of %s: %w", userID, err)
	}
	s.logger.Info("profile updated", slog.String("userID", userID))
	return p, nil
}

type Dashboard struct {
	User               *model.User     `json:"user"`
	ProfileCompletion  int             `json:"profileCompletion"`
	RecentApplications []model.Tracker `json:"recentApplications"`
}

// Dashboard never creates a profile: users who have not opened theirs yet
// are capped at 50% completion.
func (s *AccountService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("loading profile of %s: %w", userID, err)
	}

	recent, _, err := s.trackers.List(ctx, repository.TrackerFilter{
		UserID:      userID,
		Sort:        repository.SortByRecent,
		ListOptions: repository.ListOptions{Limit: recentItems},
	})
	if err != nil {
		return nil, fmt.Errorf("loading recent applications of %s: %w", userID, err)
	}
	if recent == nil {
		recent = []model.Tracker{}
	}
	localizeTrackers(ctx, recent)

	return &Dashboard{
		User:               user,
		ProfileCompletion:  model.ProfileCompletion(user, profile),
		RecentApplications: recent,
	}, nil
}
