// Package model defines the data structures used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered student account.
//
// Accounts are created by username/password registration or, when GitHub
// login is configured, by the OAuth callback. GitHubID is a pointer because
// password-only users have none, and the UNIQUE constraint on github_id in
// the DB must ignore them (SQLite allows many NULLs in a UNIQUE column).
//
// PasswordHash is tagged json:"-" so it never leaves the server.
type User struct {
	ID                    string         `json:"id"`
	Username              string         `json:"username"`
	Email                 string         `json:"email"`
	PasswordHash          string         `json:"-"`
	GitHubID              *int64         `json:"githubId,omitempty"`
	FirstName             string         `json:"firstName"`
	LastName              string         `json:"lastName"`
	KurdishName           string         `json:"kurdishName"`
	Region                Region         `json:"region"`
	CurrentEducationLevel EducationLevel `json:"currentEducationLevel"`
	PreferredStudyLevel   EducationLevel `json:"preferredStudyLevel"`
	UniversityName        string         `json:"universityName"`
	FieldOfStudy          string         `json:"fieldOfStudy"`
	GraduationYear        *int           `json:"graduationYear"`
	PhoneNumber           string         `json:"phoneNumber"`
	CurrentCity           string         `json:"currentCity"`
	CurrentCountry        string         `json:"currentCountry"`
	ResearchInterests     string         `json:"researchInterests"`
	AvatarURL             string         `json:"avatarUrl,omitempty"`
	Dialects              []Dialect      `json:"dialects,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// Dialect is one of the Kurdish dialects a user can speak. The table is
// seeded by migration; users reference dialects by code.
type Dialect struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	NameEnglish  string `json:"nameEnglish"`
	NameSorani   string `json:"nameSorani"`
	NameKurmanji string `json:"nameKurmanji"`
}

// Profile holds the long-form, optional half of a user's record.
//
// There is at most one profile per user (UNIQUE user_id). It is created
// lazily the first time the user opens their profile, see
// ProfileStore.GetOrCreate.
//
// The document fields (CVDocument, Transcripts, Certificates) are opaque
// references to uploaded files. Only their presence is ever inspected.
type Profile struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"userId"`
	Biography           string              `json:"biography"`
	MotivationLetter    string              `json:"motivationLetter"`
	GPA                 decimal.NullDecimal `json:"gpa"`
	AcademicAwards      string              `json:"academicAwards"`
	Publications        string              `json:"publications"`
	WorkExperience      string              `json:"workExperience"`
	VolunteerExperience string              `json:"volunteerExperience"`
	TechnicalSkills     string              `json:"technicalSkills"`
	LanguageSkills      string              `json:"languageSkills"`
	CVDocument          string              `json:"cvDocument"`
	Transcripts         string              `json:"transcripts"`
	Certificates        string              `json:"certificates"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}
