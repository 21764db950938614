package model

import (
	"slices"
	"time"
)

type CVTemplate struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	TemplateType         CVTemplateType `json:"templateType"`
	CountryStyle         CountryStyle   `json:"countryStyle"`
	Description          string         `json:"description"`
	SectionsOrder        StringList     `json:"sectionsOrder"`
	FormattingGuidelines string         `json:"formattingGuidelines"`
	IsActive             bool           `json:"isActive"`
	CreatedAt            time.Time      `json:"createdAt"`
}

// Resume is the header of a CV. Its sections live in separate tables and
// are loaded into ResumeDetail.
type Resume struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	TemplateID          *string   `json:"templateId"`
	Title               string    `json:"title"`
	TargetCountry       string    `json:"targetCountry"`
	TargetField         string    `json:"targetField"`
	FullName            string    `json:"fullName"`
	KurdishName         string    `json:"kurdishName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	Website             string    `json:"website"`
	LinkedIn            string    `json:"linkedin"`
	ProfessionalSummary string    `json:"professionalSummary"`
	Objective           string    `json:"objective"`
	IsPrimary           bool      `json:"isPrimary"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Education struct {
	ID                 string      `json:"id"`
	ResumeID           string      `json:"resumeId"`
	DegreeLevel        DegreeLevel `json:"degreeLevel"`
	DegreeTitle        string      `json:"degreeTitle"`
	FieldOfStudy       string      `json:"fieldOfStudy"`
	InstitutionName    string      `json:"institutionName"`
	InstitutionCity    string      `json:"institutionCity"`
	InstitutionCountry string      `json:"institutionCountry"`
	StartDate          Date        `json:"startDate"`
	EndDate            Date        `json:"endDate"`
	IsCurrent          bool        `json:"isCurrent"`
	GPA                string      `json:"gpa"`
	ThesisTitle        string      `json:"thesisTitle"`
	Supervisor         string      `json:"supervisor"`
	Description        string      `json:"description"`
	Achievements       string      `json:"achievements"`
	DisplayOrder       int         `json:"displayOrder"`
}

type Experience struct {
	ID             string         `json:"id"`
	ResumeID       string         `json:"resumeId"`
	ExperienceType ExperienceType `json:"experienceType"`
	JobTitle       string         `json:"jobTitle"`
	CompanyName    string         `json:"companyName"`
	CompanyCity    string         `json:"companyCity"`
	CompanyCountry string         `json:"companyCountry"`
	StartDate      Date           `json:"startDate"`
	EndDate        Date           `json:"endDate"`
	IsCurrent      bool           `json:"isCurrent"`
	Description    string         `json:"description"`
	Achievements   string         `json:"achievements"`
	SkillsUsed     string         `json:"skillsUsed"`
	DisplayOrder   int            `json:"displayOrder"`
}

type Skill struct {
	ID                string        `json:"id"`
	ResumeID          string        `json:"resumeId"`
	Category          SkillCategory `json:"category"`
	Name              string        `json:"name"`
	Proficiency       Proficiency   `json:"proficiency"`
	Description       string        `json:"description"`
	YearsOfExperience *int          `json:"yearsOfExperience"`
	DisplayOrder      int           `json:"displayOrder"`
}

type Publication struct {
	ID               string          `json:"id"`
	ResumeID         string          `json:"resumeId"`
	PublicationType  PublicationType `json:"publicationType"`
	Title            string          `json:"title"`
	Authors          string          `json:"authors"`
	PublicationVenue string          `json:"publicationVenue"`
	PublicationDate  Date            `json:"publicationDate"`
	Volume           string          `json:"volume"`
	Issue            string          `json:"issue"`
	Pages            string          `json:"pages"`
	DOI              string          `json:"doi"`
	URL              string          `json:"url"`
	Abstract         string          `json:"abstract"`
	Keywords         string          `json:"keywords"`
	DisplayOrder     int             `json:"displayOrder"`
}

type Award struct {
	ID                  string    `json:"id"`
	ResumeID            string    `json:"resumeId"`
	AwardType           AwardType `json:"awardType"`
	Title               string    `json:"title"`
	IssuingOrganization string    `json:"issuingOrganization"`
	DateReceived        Date      `json:"dateReceived"`
	Description         string    `json:"description"`
	DisplayOrder        int       `json:"displayOrder"`
}

// ResumeDetail is a resume with every section, each in its display order.
type ResumeDetail struct {
	Resume       *Resume       `json:"resume"`
	Template     *CVTemplate   `json:"template,omitempty"`
	Education    []Education   `json:"education"`
	Experience   []Experience  `json:"experience"`
	Skills       []Skill       `json:"skills"`
	Publications []Publication `json:"publications"`
	Awards       []Award       `json:"awards"`
}

// ResumeSection names one of the sub-collections of a resume, as used in
// URLs (/api/resumes/{id}/{section}).
type ResumeSection string

const (
	SectionEducation    ResumeSection = "education"
	SectionExperience   ResumeSection = "experience"
	SectionSkills       ResumeSection = "skills"
	SectionPublications ResumeSection = "publications"
	SectionAwards       ResumeSection = "awards"
)

var AllResumeSections = []ResumeSection{
	SectionEducation, SectionExperience, SectionSkills, SectionPublications, SectionAwards,
}

func (s ResumeSection) Valid() bool { return slices.Contains(AllResumeSections, s) }
