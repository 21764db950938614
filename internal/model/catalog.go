package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakif/applyhelp/internal/i18n"
)

// Catalog entities are read-mostly. They are loaded by cmd/seed and only ever
// listed or fetched by the application. IsActive hides a record from every
// public listing without deleting it.

// Country is a study destination, identified publicly by its short code.
type Country struct {
	ID                    string              `json:"id"`
	Code                  string              `json:"code"`
	Name                  string              `json:"name"`
	Description           string              `json:"description"`
	OfficialLanguage      string              `json:"officialLanguage"`
	Currency              string              `json:"currency"`
	AcademicYearStart     string              `json:"academicYearStart"`
	ApplicationDeadlines  string              `json:"applicationDeadlines"`
	AvgTuitionUSD         decimal.NullDecimal `json:"avgTuitionUsd"`
	AvgLivingCostUSD      decimal.NullDecimal `json:"avgLivingCostUsd"`
	StudentVisaType       string              `json:"studentVisaType"`
	VisaProcessingTime    string              `json:"visaProcessingTime"`
	WorkPermitAllowed     bool                `json:"workPermitAllowed"`
	PostStudyWorkVisa     bool                `json:"postStudyWorkVisa"`
	KurdishPopulation     string              `json:"kurdishPopulation"`
	KurdishOrganizations  string              `json:"kurdishOrganizations"`
	ApplicationDifficulty int                 `json:"applicationDifficulty"`
	LivingQuality         int                 `json:"livingQuality"`
	StudyQuality          int                 `json:"studyQuality"`
	IsActive              bool                `json:"isActive"`
	Translations          i18n.Translations   `json:"translations,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// Localize overwrites translatable text fields with their locale override.
func (c *Country) Localize(loc i18n.Locale) {
	c.Name = c.Translations.Get(loc, "name", c.Name)
	c.Description = c.Translations.Get(loc, "description", c.Description)
}

type University struct {
	ID                         string            `json:"id"`
	CountryID                  string            `json:"countryId"`
	Country                    *Country          `json:"country,omitempty"`
	Name                       string            `json:"name"`
	City                       string            `json:"city"`
	Website                    string            `json:"website"`
	UniversityType             UniversityType    `json:"universityType"`
	EstablishedYear            *int              `json:"establishedYear"`
	WorldRanking               *int              `json:"worldRanking"`
	NationalRanking            *int              `json:"nationalRanking"`
	StudentPopulation          *int              `json:"studentPopulation"`
	InternationalStudents      *int              `json:"internationalStudents"`
	InstructionLanguages       string            `json:"instructionLanguages"`
	InternationalOfficeEmail   string            `json:"internationalOfficeEmail"`
	AdmissionEmail             string            `json:"admissionEmail"`
	KurdishStudentsInfo        string            `json:"kurdishStudentsInfo"`
	KurdishFriendlySupervisors string            `json:"kurdishFriendlySupervisors"`
	AcademicReputation         int               `json:"academicReputation"`
	ResearchOpportunities      int               `json:"researchOpportunities"`
	InternationalSupport       int               `json:"internationalSupport"`
	IsActive                   bool              `json:"isActive"`
	Translations               i18n.Translations `json:"translations,omitempty"`
	CreatedAt                  time.Time         `json:"createdAt"`
	UpdatedAt                  time.Time         `json:"updatedAt"`
}

func (u *University) Localize(loc i18n.Locale) {
	u.Name = u.Translations.Get(loc, "name", u.Name)
	u.KurdishStudentsInfo = u.Translations.Get(loc, "kurdish_students_info", u.KurdishStudentsInfo)
	if u.Country != nil {
		u.Country.Localize(loc)
	}
}

type Program struct {
	ID                    string              `json:"id"`
	UniversityID          string              `json:"universityId"`
	University            *University         `json:"university,omitempty"`
	Name                  string              `json:"name"`
	Level                 ProgramLevel        `json:"level"`
	FieldOfStudy          string              `json:"fieldOfStudy"`
	DurationMonths        int                 `json:"durationMonths"`
	Credits               *int                `json:"credits"`
	LanguageOfInstruction string              `json:"languageOfInstruction"`
	MinGPA                decimal.NullDecimal `json:"minGpa"`
	LanguageRequirements  string              `json:"languageRequirements"`
	OtherRequirements     string              `json:"otherRequirements"`
	ApplicationDeadline   Date                `json:"applicationDeadline"`
	StartDate             Date                `json:"startDate"`
	TuitionFee            decimal.NullDecimal `json:"tuitionFee"`
	Currency              string              `json:"currency"`
	ScholarshipsAvailable bool                `json:"scholarshipsAvailable"`
	Description           string              `json:"description"`
	CareerProspects       string              `json:"careerProspects"`
	IsActive              bool                `json:"isActive"`
	Translations          i18n.Translations   `json:"translations,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

func (p *Program) Localize(loc i18n.Locale) {
	p.Name = p.Translations.Get(loc, "name", p.Name)
	p.Description = p.Translations.Get(loc, "description", p.Description)
	p.CareerProspects = p.Translations.Get(loc, "career_prospects", p.CareerProspects)
	if p.University != nil {
		p.University.Localize(loc)
	}
}

type Scholarship struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Provider            string              `json:"provider"`
	CountryID           *string             `json:"countryId"`
	UniversityID        *string             `json:"universityId"`
	ScholarshipType     ScholarshipType     `json:"scholarshipType"`
	Amount              decimal.NullDecimal `json:"amount"`
	Currency            string              `json:"currency"`
	EligibilityCriteria string              `json:"eligibilityCriteria"`
	KurdishSpecific     bool                `json:"kurdishSpecific"`
	ApplicationDeadline Date                `json:"applicationDeadline"`
	ApplicationProcess  string              `json:"applicationProcess"`
	RequiredDocuments   string              `json:"requiredDocuments"`
	Website             string              `json:"website"`
	ContactEmail        string              `json:"contactEmail"`
	Description         string              `json:"description"`
	ProgramIDs          []string            `json:"programIds,omitempty"`
	IsActive            bool                `json:"isActive"`
	Translations        i18n.Translations   `json:"translations,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func (s *Scholarship) Localize(loc i18n.Locale) {
	s.Name = s.Translations.Get(loc, "name", s.Name)
	s.Description = s.Translations.Get(loc, "description", s.Description)
	s.EligibilityCriteria = s.Translations.Get(loc, "eligibility_criteria", s.EligibilityCriteria)
}
