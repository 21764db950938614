package model

import "slices"

// ENUMERATIONS:
// Every choice field is a typed string. Only the key is ever stored; display
// labels live in the i18n package, keyed by locale.
//
// Each type exposes Valid() so the validator's "enum" tag can check it, and an
// All* slice that forms and the /api/enums endpoint use for choices.

type Region string

const (
	RegionRojhelat Region = "rojhelat"
	RegionBashur   Region = "bashur"
	RegionBakur    Region = "bakur"
	RegionRojava   Region = "rojava"
	RegionDiaspora Region = "diaspora"
)

var AllRegions = []Region{RegionRojhelat, RegionBashur, RegionBakur, RegionRojava, RegionDiaspora}

func (v Region) Valid() bool { return slices.Contains(AllRegions, v) }

type EducationLevel string

const (
	EducationBachelor     EducationLevel = "bachelor"
	EducationMaster       EducationLevel = "master"
	EducationPhD          EducationLevel = "phd"
	EducationProfessional EducationLevel = "professional"
)

var AllEducationLevels = []EducationLevel{EducationBachelor, EducationMaster, EducationPhD, EducationProfessional}

func (v EducationLevel) Valid() bool { return slices.Contains(AllEducationLevels, v) }

type UniversityType string

const (
	UniversityPublic   UniversityType = "public"
	UniversityPrivate  UniversityType = "private"
	UniversityResearch UniversityType = "research"
	UniversityApplied  UniversityType = "applied"
)

var AllUniversityTypes = []UniversityType{UniversityPublic, UniversityPrivate, UniversityResearch, UniversityApplied}

func (v UniversityType) Valid() bool { return slices.Contains(AllUniversityTypes, v) }

type ProgramLevel string

const (
	ProgramBachelor     ProgramLevel = "bachelor"
	ProgramMaster       ProgramLevel = "master"
	ProgramPhD          ProgramLevel = "phd"
	ProgramPostdoc      ProgramLevel = "postdoc"
	ProgramProfessional ProgramLevel = "professional"
)

var AllProgramLevels = []ProgramLevel{ProgramBachelor, ProgramMaster, ProgramPhD, ProgramPostdoc, ProgramProfessional}

func (v ProgramLevel) Valid() bool { return slices.Contains(AllProgramLevels, v) }

type ScholarshipType string

const (
	ScholarshipFull     ScholarshipType = "full"
	ScholarshipPartial  ScholarshipType = "partial"
	ScholarshipTuition  ScholarshipType = "tuition"
	ScholarshipLiving   ScholarshipType = "living"
	ScholarshipResearch ScholarshipType = "research"
)

var AllScholarshipTypes = []ScholarshipType{ScholarshipFull, ScholarshipPartial, ScholarshipTuition, ScholarshipLiving, ScholarshipResearch}

func (v ScholarshipType) Valid() bool { return slices.Contains(AllScholarshipTypes, v) }

type ApplicationStatus string

const (
	StatusPlanning    ApplicationStatus = "planning"
	StatusPreparing   ApplicationStatus = "preparing"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusInterview   ApplicationStatus = "interview"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWaitlisted  ApplicationStatus = "waitlisted"
	StatusDeferred    ApplicationStatus = "deferred"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

var AllApplicationStatuses = []ApplicationStatus{
	StatusPlanning, StatusPreparing, StatusSubmitted, StatusUnderReview, StatusInterview,
	StatusAccepted, StatusRejected, StatusWaitlisted, StatusDeferred, StatusWithdrawn,
}

func (v ApplicationStatus) Valid() bool { return slices.Contains(AllApplicationStatuses, v) }

// PendingStatuses are the statuses the communications dashboard counts as
// "pending".
var PendingStatuses = []ApplicationStatus{StatusPreparing, StatusSubmitted, StatusUnderReview}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityVeryHigh Priority = "very_high"
)

var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityVeryHigh}

func (v Priority) Valid() bool { return slices.Contains(AllPriorities, v) }

// Rank orders priorities for sorting: very_high=3 ... low=0, unknown=-1.
func (v Priority) Rank() int { return slices.Index(AllPriorities, v) }

type DocumentType string

const (
	DocCV                  DocumentType = "cv"
	DocCoverLetter         DocumentType = "cover_letter"
	DocMotivationLetter    DocumentType = "motivation_letter"
	DocResearchProposal    DocumentType = "research_proposal"
	DocTranscript          DocumentType = "transcript"
	DocDiploma             DocumentType = "diploma"
	DocRecommendation      DocumentType = "recommendation"
	DocLanguageCertificate DocumentType = "language_certificate"
	DocPassport            DocumentType = "passport"
	DocPortfolio           DocumentType = "portfolio"
	DocWritingSample       DocumentType = "writing_sample"
	DocTestScores          DocumentType = "test_scores"
	DocOther               DocumentType = "other"
)

var AllDocumentTypes = []DocumentType{
	DocCV, DocCoverLetter, DocMotivationLetter, DocResearchProposal, DocTranscript, DocDiploma,
	DocRecommendation, DocLanguageCertificate, DocPassport, DocPortfolio, DocWritingSample,
	DocTestScores, DocOther,
}

func (v DocumentType) Valid() bool { return slices.Contains(AllDocumentTypes, v) }

type DocumentStatus string

const (
	DocStatusDraft       DocumentStatus = "draft"
	DocStatusReady       DocumentStatus = "ready"
	DocStatusSubmitted   DocumentStatus = "submitted"
	DocStatusNeedsUpdate DocumentStatus = "needs_update"
)

var AllDocumentStatuses = []DocumentStatus{DocStatusDraft, DocStatusReady, DocStatusSubmitted, DocStatusNeedsUpdate}

func (v DocumentStatus) Valid() bool { return slices.Contains(AllDocumentStatuses, v) }

type EmailType string

const (
	EmailInquiry     EmailType = "inquiry"
	EmailFollowUp    EmailType = "follow_up"
	EmailApplication EmailType = "application"
	EmailInterview   EmailType = "interview"
	EmailAcceptance  EmailType = "acceptance"
	EmailVisa        EmailType = "visa"
	EmailOther       EmailType = "other"
)

var AllEmailTypes = []EmailType{EmailInquiry, EmailFollowUp, EmailApplication, EmailInterview, EmailAcceptance, EmailVisa, EmailOther}

func (v EmailType) Valid() bool { return slices.Contains(AllEmailTypes, v) }

type TemplateType string

const (
	TemplateInitialInquiry         TemplateType = "initial_inquiry"
	TemplateApplicationFollowUp    TemplateType = "application_follow_up"
	TemplateSupervisorIntroduction TemplateType = "supervisor_introduction"
	TemplateInterviewRequest       TemplateType = "interview_request"
	TemplateAcceptanceResponse     TemplateType = "acceptance_response"
	TemplateVisaInquiry            TemplateType = "visa_inquiry"
	TemplateScholarshipInquiry     TemplateType = "scholarship_inquiry"
	TemplateResearchProposal       TemplateType = "research_proposal"
	TemplateRecommendationRequest  TemplateType = "recommendation_request"
	TemplateGeneralInquiry         TemplateType = "general_inquiry"
)

var AllTemplateTypes = []TemplateType{
	TemplateInitialInquiry, TemplateApplicationFollowUp, TemplateSupervisorIntroduction,
	TemplateInterviewRequest, TemplateAcceptanceResponse, TemplateVisaInquiry,
	TemplateScholarshipInquiry, TemplateResearchProposal, TemplateRecommendationRequest,
	TemplateGeneralInquiry,
}

func (v TemplateType) Valid() bool { return slices.Contains(AllTemplateTypes, v) }

type Formality string

const (
	FormalityVeryFormal Formality = "very_formal"
	FormalityFormal     Formality = "formal"
	FormalitySemiFormal Formality = "semi_formal"
	FormalityInformal   Formality = "informal"
)

var AllFormalities = []Formality{FormalityVeryFormal, FormalityFormal, FormalitySemiFormal, FormalityInformal}

func (v Formality) Valid() bool { return slices.Contains(AllFormalities, v) }

type TipContext string

const (
	TipEmail       TipContext = "email"
	TipInterview   TipContext = "interview"
	TipMeeting     TipContext = "meeting"
	TipPhone       TipContext = "phone"
	TipNetworking  TipContext = "networking"
	TipApplication TipContext = "application"
	TipVisa        TipContext = "visa"
	TipGeneral     TipContext = "general"
)

var AllTipContexts = []TipContext{TipEmail, TipInterview, TipMeeting, TipPhone, TipNetworking, TipApplication, TipVisa, TipGeneral}

func (v TipContext) Valid() bool { return slices.Contains(AllTipContexts, v) }

type CVTemplateType string

const (
	CVAcademic     CVTemplateType = "academic"
	CVProfessional CVTemplateType = "professional"
	CVResearch     CVTemplateType = "research"
	CVCreative     CVTemplateType = "creative"
)

var AllCVTemplateTypes = []CVTemplateType{CVAcademic, CVProfessional, CVResearch, CVCreative}

func (v CVTemplateType) Valid() bool { return slices.Contains(AllCVTemplateTypes, v) }

type CountryStyle string

const (
	StyleUS            CountryStyle = "us"
	StyleUK            CountryStyle = "uk"
	StyleEU            CountryStyle = "eu"
	StyleCanada        CountryStyle = "canada"
	StyleAustralia     CountryStyle = "australia"
	StyleInternational CountryStyle = "international"
)

var AllCountryStyles = []CountryStyle{StyleUS, StyleUK, StyleEU, StyleCanada, StyleAustralia, StyleInternational}

func (v CountryStyle) Valid() bool { return slices.Contains(AllCountryStyles, v) }

type DegreeLevel string

const (
	DegreeHighSchool  DegreeLevel = "high_school"
	DegreeDiploma     DegreeLevel = "diploma"
	DegreeBachelor    DegreeLevel = "bachelor"
	DegreeMaster      DegreeLevel = "master"
	DegreePhD         DegreeLevel = "phd"
	DegreePostdoc     DegreeLevel = "postdoc"
	DegreeCertificate DegreeLevel = "certificate"
)

var AllDegreeLevels = []DegreeLevel{DegreeHighSchool, DegreeDiploma, DegreeBachelor, DegreeMaster, DegreePhD, DegreePostdoc, DegreeCertificate}

func (v DegreeLevel) Valid() bool { return slices.Contains(AllDegreeLevels, v) }

type ExperienceType string

const (
	ExperienceWork       ExperienceType = "work"
	ExperienceResearch   ExperienceType = "research"
	ExperienceInternship ExperienceType = "internship"
	ExperienceVolunteer  ExperienceType = "volunteer"
	ExperienceTeaching   ExperienceType = "teaching"
	ExperienceProject    ExperienceType = "project"
)

var AllExperienceTypes = []ExperienceType{ExperienceWork, ExperienceResearch, ExperienceInternship, ExperienceVolunteer, ExperienceTeaching, ExperienceProject}

func (v ExperienceType) Valid() bool { return slices.Contains(AllExperienceTypes, v) }

type SkillCategory string

const (
	SkillTechnical     SkillCategory = "technical"
	SkillLanguage      SkillCategory = "language"
	SkillSoftware      SkillCategory = "software"
	SkillResearch      SkillCategory = "research"
	SkillInterpersonal SkillCategory = "interpersonal"
	SkillOther         SkillCategory = "other"
)

var AllSkillCategories = []SkillCategory{SkillTechnical, SkillLanguage, SkillSoftware, SkillResearch, SkillInterpersonal, SkillOther}

func (v SkillCategory) Valid() bool { return slices.Contains(AllSkillCategories, v) }

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
	ProficiencyNative       Proficiency = "native"
)

var AllProficiencies = []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert, ProficiencyNative}

func (v Proficiency) Valid() bool { return slices.Contains(AllProficiencies, v) }

type PublicationType string

const (
	PublicationJournal    PublicationType = "journal"
	PublicationConference PublicationType = "conference"
	PublicationBook       PublicationType = "book"
	PublicationChapter    PublicationType = "chapter"
	PublicationThesis     PublicationType = "thesis"
	PublicationReport     PublicationType = "report"
	PublicationPatent     PublicationType = "patent"
	PublicationOther      PublicationType = "other"
)

var AllPublicationTypes = []PublicationType{
	PublicationJournal, PublicationConference, PublicationBook, PublicationChapter,
	PublicationThesis, PublicationReport, PublicationPatent, PublicationOther,
}

func (v PublicationType) Valid() bool { return slices.Contains(AllPublicationTypes, v) }

type AwardType string

const (
	AwardAcademic     AwardType = "academic"
	AwardResearch     AwardType = "research"
	AwardProfessional AwardType = "professional"
	AwardScholarship  AwardType = "scholarship"
	AwardCompetition  AwardType = "competition"
	AwardHonor        AwardType = "honor"
	AwardCertificate  AwardType = "certificate"
	AwardOther        AwardType = "other"
)

var AllAwardTypes = []AwardType{
	AwardAcademic, AwardResearch, AwardProfessional, AwardScholarship,
	AwardCompetition, AwardHonor, AwardCertificate, AwardOther,
}

func (v AwardType) Valid() bool { return slices.Contains(AllAwardTypes, v) }

type GuideType string

const (
	GuideCountry     GuideType = "country"
	GuideUniversity  GuideType = "university"
	GuideProcess     GuideType = "process"
	GuideVisa        GuideType = "visa"
	GuideScholarship GuideType = "scholarship"
	GuideCareer      GuideType = "career"
	GuideLanguage    GuideType = "language"
	GuideCultural    GuideType = "cultural"
	GuideGeneral     GuideType = "general"
)

var AllGuideTypes = []GuideType{
	GuideCountry, GuideUniversity, GuideProcess, GuideVisa, GuideScholarship,
	GuideCareer, GuideLanguage, GuideCultural, GuideGeneral,
}

func (v GuideType) Valid() bool { return slices.Contains(AllGuideTypes, v) }

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var AllDifficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

func (v Difficulty) Valid() bool { return slices.Contains(AllDifficulties, v) }
