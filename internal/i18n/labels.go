package i18n

// Label groups. Each names one enumeration; the same key (say "bachelor")
// can carry a different label in different groups.
const (
	GroupRegion          = "region"
	GroupEducationLevel  = "education_level"
	GroupDialect         = "dialect"
	GroupUniversityType  = "university_type"
	GroupProgramLevel    = "program_level"
	GroupScholarshipType = "scholarship_type"
	GroupStatus          = "application_status"
	GroupPriority        = "priority"
	GroupDocumentType    = "document_type"
	GroupDocumentStatus  = "document_status"
	GroupEmailType       = "email_type"
	GroupTemplateType    = "template_type"
	GroupFormality       = "formality"
	GroupTipContext      = "tip_context"
	GroupCVTemplateType  = "cv_template_type"
	GroupCountryStyle    = "country_style"
	GroupDegreeLevel     = "degree_level"
	GroupExperienceType  = "experience_type"
	GroupSkillCategory   = "skill_category"
	GroupProficiency     = "proficiency"
	GroupPublicationType = "publication_type"
	GroupAwardType       = "award_type"
	GroupGuideType       = "guide_type"
	GroupDifficulty      = "difficulty"
)

// labels holds the English display label of every enum key. Translation
// goes through T, so the English label doubles as the msgid.
var labels = map[string]map[string]string{
	GroupRegion: {
		"rojhelat": "Rojhelat",
		"bashur":   "Başûr",
		"bakur":    "Bakûr",
		"rojava":   "Rojava",
		"diaspora": "Diaspora",
	},
	GroupEducationLevel: {
		"bachelor":     "Bachelor's Degree",
		"master":       "Master's Degree",
		"phd":          "PhD",
		"professional": "Professional Degree",
	},
	GroupDialect: {
		"sorani":    "Sorani (Central Kurdish)",
		"kurmanji":  "Kurmanji (Northern Kurdish)",
		"pehlewani": "Pehlewani (Southern Kurdish)",
		"zazaki":    "Zazaki (Dimli)",
		"gorani":    "Gorani (Hawrami)",
	},
	GroupUniversityType: {
		"public":   "Public University",
		"private":  "Private University",
		"research": "Research Institution",
		"applied":  "University of Applied Sciences",
	},
	GroupProgramLevel: {
		"bachelor":     "Bachelor's Degree",
		"master":       "Master's Degree",
		"phd":          "PhD",
		"postdoc":      "Postdoctoral",
		"professional": "Professional Program",
	},
	GroupScholarshipType: {
		"full":     "Full Scholarship",
		"partial":  "Partial Scholarship",
		"tuition":  "Tuition Only",
		"living":   "Living Expenses Only",
		"research": "Research Grant",
	},
	GroupStatus: {
		"planning":     "Planning to Apply",
		"preparing":    "Preparing Application",
		"submitted":    "Application Submitted",
		"under_review": "Under Review",
		"interview":    "Interview Stage",
		"accepted":     "Accepted",
		"rejected":     "Rejected",
		"waitlisted":   "Waitlisted",
		"deferred":     "Deferred",
		"withdrawn":    "Withdrawn",
	},
	GroupPriority: {
		"low":       "Low Priority",
		"medium":    "Medium Priority",
		"high":      "High Priority",
		"very_high": "Very High Priority",
	},
	GroupDocumentType: {
		"cv":                   "CV/Resume",
		"cover_letter":         "Cover Letter",
		"motivation_letter":    "Motivation Letter",
		"research_proposal":    "Research Proposal",
		"transcript":           "Academic Transcript",
		"diploma":              "Diploma/Certificate",
		"recommendation":       "Recommendation Letter",
		"language_certificate": "Language Certificate",
		"passport":             "Passport Copy",
		"portfolio":            "Portfolio",
		"writing_sample":       "Writing Sample",
		"test_scores":          "Test Scores",
		"other":                "Other Document",
	},
	GroupDocumentStatus: {
		"draft":        "Draft",
		"ready":        "Ready",
		"submitted":    "Submitted",
		"needs_update": "Needs Update",
	},
	GroupEmailType: {
		"inquiry":     "Initial Inquiry",
		"follow_up":   "Follow-up",
		"application": "Application Related",
		"interview":   "Interview Related",
		"acceptance":  "Acceptance Related",
		"visa":        "Visa Related",
		"other":       "Other",
	},
	GroupTemplateType: {
		"initial_inquiry":         "Initial Inquiry to Supervisor",
		"application_follow_up":   "Application Follow-up",
		"supervisor_introduction": "Supervisor Introduction",
		"interview_request":       "Interview Request",
		"acceptance_response":     "Acceptance Response",
		"visa_inquiry":            "Visa Inquiry",
		"scholarship_inquiry":     "Scholarship Inquiry",
		"research_proposal":       "Research Proposal Email",
		"recommendation_request":  "Recommendation Letter Request",
		"general_inquiry":         "General Inquiry",
	},
	GroupFormality: {
		"very_formal": "Very Formal",
		"formal":      "Formal",
		"semi_formal": "Semi-Formal",
		"informal":    "Informal",
	},
	GroupTipContext: {
		"email":       "Email Communication",
		"interview":   "Interview",
		"meeting":     "Meeting/Presentation",
		"phone":       "Phone Call",
		"networking":  "Networking Event",
		"application": "Application Process",
		"visa":        "Visa Interview",
		"general":     "General Communication",
	},
	GroupCVTemplateType: {
		"academic":     "Academic CV",
		"professional": "Professional Resume",
		"research":     "Research-Focused CV",
		"creative":     "Creative Portfolio",
	},
	GroupCountryStyle: {
		"us":            "US Style",
		"uk":            "UK Style",
		"eu":            "European Style",
		"canada":        "Canadian Style",
		"australia":     "Australian Style",
		"international": "International Style",
	},
	GroupDegreeLevel: {
		"high_school": "High School",
		"diploma":     "Diploma",
		"bachelor":    "Bachelor's Degree",
		"master":      "Master's Degree",
		"phd":         "PhD",
		"postdoc":     "Postdoctoral",
		"certificate": "Certificate",
	},
	GroupExperienceType: {
		"work":       "Work Experience",
		"research":   "Research Experience",
		"internship": "Internship",
		"volunteer":  "Volunteer Work",
		"teaching":   "Teaching Experience",
		"project":    "Project Experience",
	},
	GroupSkillCategory: {
		"technical":     "Technical Skills",
		"language":      "Language Skills",
		"software":      "Software Skills",
		"research":      "Research Skills",
		"interpersonal": "Interpersonal Skills",
		"other":         "Other Skills",
	},
	GroupProficiency: {
		"beginner":     "Beginner",
		"intermediate": "Intermediate",
		"advanced":     "Advanced",
		"expert":       "Expert",
		"native":       "Native",
	},
	GroupPublicationType: {
		"journal":    "Journal Article",
		"conference": "Conference Paper",
		"book":       "Book",
		"chapter":    "Book Chapter",
		"thesis":     "Thesis",
		"report":     "Technical Report",
		"patent":     "Patent",
		"other":      "Other",
	},
	GroupAwardType: {
		"academic":     "Academic Award",
		"research":     "Research Award",
		"professional": "Professional Award",
		"scholarship":  "Scholarship",
		"competition":  "Competition Award",
		"honor":        "Honor/Recognition",
		"certificate":  "Certificate",
		"other":        "Other",
	},
	GroupGuideType: {
		"country":     "Country Guide",
		"university":  "University Guide",
		"process":     "Process Guide",
		"visa":        "Visa Guide",
		"scholarship": "Scholarship Guide",
		"career":      "Career Guide",
		"language":    "Language Guide",
		"cultural":    "Cultural Guide",
		"general":     "General Guide",
	},
	GroupDifficulty: {
		"beginner":     "Beginner",
		"intermediate": "Intermediate",
		"advanced":     "Advanced",
	},
}

// Label returns the display label of key within group, translated to loc.
// Unknown keys are returned as-is so a bad row still renders something.
func Label(loc Locale, group, key string) string {
	english, ok := labels[group][key]
	if !ok {
		return key
	}
	return T(loc, english)
}

// HasGroup reports whether group is a known label group.
func HasGroup(group string) bool {
	_, ok := labels[group]
	return ok
}
