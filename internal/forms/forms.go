// Package forms describes the application's input forms as data.
//
// A Form is a list of field groups. Each field has a kind (what input to
// render), a required flag and, for select fields, its choices. Choices and
// labels are resolved for one locale when the form is rendered, so clients
// never hard-code enum keys or their translations.
package forms

import (
	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/model"
)

type Kind string

const (
	Text     Kind = "text"
	TextArea Kind = "textarea"
	Email    Kind = "email"
	Password Kind = "password"
	Number   Kind = "number"
	Decimal  Kind = "decimal"
	Date     Kind = "date"
	URL      Kind = "url"
	Select   Kind = "select"
	Checkbox Kind = "checkbox"
	File     Kind = "file"
)

// Choice is one option of a select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Required bool     `json:"required"`
	Choices  []Choice `json:"choices,omitempty"`

	// enum names the label group supplying Choices.
	enum string
}

type Group struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Form struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

func field(name, label string, kind Kind) Field {
	return Field{Name: name, Label: label, Kind: kind}
}

func required(name, label string, kind Kind) Field {
	return Field{Name: name, Label: label, Kind: kind, Required: true}
}

func choice(name, label, enum string, req bool) Field {
	return Field{Name: name, Label: label, Kind: Select, Required: req, enum: enum}
}

var schemas = map[string]Form{
	"register": {Groups: []Group{
		{Title: "Account", Fields: []Field{
			required("username", "Username", Text),
			required("email", "Email", Email),
			required("password", "Password", Password),
			required("passwordConfirm", "Confirm password", Password),
		}},
		{Title: "Personal Information", Fields: []Field{
			required("firstName", "First name", Text),
			required("lastName", "Last name", Text),
			field("kurdishName", "Kurdish name", Text),
			choice("region", "Region", i18n.GroupRegion, true),
			field("phoneNumber", "Phone number", Text),
			field("currentCity", "Current city", Text),
			field("currentCountry", "Current country", Text),
		}},
		{Title: "Education", Fields: []Field{
			required("fieldOfStudy", "Field of study", Text),
			choice("currentEducationLevel", "Current education level", i18n.GroupEducationLevel, true),
			choice("preferredStudyLevel", "Preferred study level", i18n.GroupEducationLevel, true),
		}},
	}},
	"account": {Groups: []Group{
		{Title: "Personal Information", Fields: []Field{
			required("email", "Email", Email),
			required("firstName", "First name", Text),
			required("lastName", "Last name", Text),
			field("kurdishName", "Kurdish name", Text),
			choice("region", "Region", i18n.GroupRegion, false),
			field("phoneNumber", "Phone number", Text),
			field("currentCity", "Current city", Text),
			field("currentCountry", "Current country", Text),
		}},
		{Title: "Education", Fields: []Field{
			choice("currentEducationLevel", "Current education level", i18n.GroupEducationLevel, false),
			choice("preferredStudyLevel", "Preferred study level", i18n.GroupEducationLevel, false),
			field("universityName", "University", Text),
			field("fieldOfStudy", "Field of study", Text),
			field("graduationYear", "Graduation year", Number),
			field("researchInterests", "Research interests", TextArea),
		}},
	}},
	"profile": {Groups: []Group{
		{Title: "About", Fields: []Field{
			field("biography", "Biography", TextArea),
			field("motivationLetter", "Motivation letter", TextArea),
		}},
		{Title: "Academic", Fields: []Field{
			field("gpa", "GPA", Decimal),
			field("academicAwards", "Academic awards", TextArea),
			field("publications", "Publications", TextArea),
		}},
		{Title: "Experience", Fields: []Field{
			field("workExperience", "Work experience", TextArea),
			field("volunteerExperience", "Volunteer experience", TextArea),
			field("technicalSkills", "Technical skills", TextArea),
			field("languageSkills", "Language skills", TextArea),
		}},
		{Title: "Documents", Fields: []Field{
			field("cvDocument", "CV", File),
			field("transcripts", "Transcripts", File),
			field("certificates", "Certificates", File),
		}},
	}},
	"application": {Groups: []Group{
		{Title: "Application", Fields: []Field{
			required("universityId", "University", Select),
			field("programId", "Program", Select),
			required("applicationTitle", "Application title", Text),
			choice("status", "Status", i18n.GroupStatus, false),
			choice("priority", "Priority", i18n.GroupPriority, false),
		}},
		{Title: "Dates", Fields: []Field{
			field("applicationDeadline", "Application deadline", Date),
			field("submissionDate", "Submission date", Date),
			field("decisionDate", "Decision date", Date),
		}},
		{Title: "Contacts", Fields: []Field{
			field("supervisorName", "Supervisor name", Text),
			field("supervisorEmail", "Supervisor email", Email),
			field("admissionContact", "Admission contact", Text),
			field("admissionEmail", "Admission email", Email),
		}},
		{Title: "Details", Fields: []Field{
			field("researchArea", "Research area", Text),
			field("fundingStatus", "Funding status", Text),
			field("applicationFee", "Application fee", Decimal),
			field("notes", "Notes", TextArea),
			field("progressNotes", "Progress notes", TextArea),
		}},
	}},
	"document": {Groups: []Group{
		{Title: "Document", Fields: []Field{
			choice("documentType", "Document type", i18n.GroupDocumentType, true),
			required("title", "Title", Text),
			choice("status", "Status", i18n.GroupDocumentStatus, false),
			field("file", "File", File),
			field("version", "Version", Number),
			field("deadline", "Deadline", Date),
			field("isRequired", "Required", Checkbox),
			field("description", "Description", TextArea),
		}},
	}},
	"email": {Groups: []Group{
		{Title: "Email", Fields: []Field{
			field("trackerId", "Application", Select),
			field("templateId", "Template", Select),
			choice("emailType", "Email type", i18n.GroupEmailType, true),
			field("recipientName", "Recipient name", Text),
			required("recipientEmail", "Recipient email", Email),
			required("subject", "Subject", Text),
			required("body", "Body", TextArea),
			field("notes", "Notes", TextArea),
		}},
	}},
	"resume": {Groups: []Group{
		{Title: "Resume", Fields: []Field{
			required("title", "Title", Text),
			field("templateId", "Template", Select),
			field("targetCountry", "Target country", Text),
			field("targetField", "Target field", Text),
			field("isPrimary", "Primary resume", Checkbox),
		}},
		{Title: "Personal Information", Fields: []Field{
			required("fullName", "Full name", Text),
			field("kurdishName", "Kurdish name", Text),
			required("email", "Email", Email),
			field("phone", "Phone", Text),
			field("address", "Address", TextArea),
			field("website", "Website", URL),
			field("linkedin", "LinkedIn", URL),
		}},
		{Title: "Summary", Fields: []Field{
			field("professionalSummary", "Professional summary", TextArea),
			field("objective", "Objective", TextArea),
		}},
	}},
	"education": {Groups: []Group{
		{Title: "Education", Fields: []Field{
			choice("degreeLevel", "Degree level", i18n.GroupDegreeLevel, true),
			required("degreeTitle", "Degree title", Text),
			required("fieldOfStudy", "Field of study", Text),
			required("institutionName", "Institution", Text),
			field("institutionCity", "City", Text),
			field("institutionCountry", "Country", Text),
			required("startDate", "Start date", Date),
			field("endDate", "End date", Date),
			field("isCurrent", "Currently studying", Checkbox),
			field("gpa", "GPA", Decimal),
			field("thesisTitle", "Thesis title", Text),
			field("supervisor", "Supervisor", Text),
			field("description", "Description", TextArea),
			field("achievements", "Achievements", TextArea),
		}},
	}},
	"experience": {Groups: []Group{
		{Title: "Experience", Fields: []Field{
			choice("experienceType", "Experience type", i18n.GroupExperienceType, true),
			required("jobTitle", "Job title", Text),
			required("companyName", "Organization", Text),
			field("companyCity", "City", Text),
			field("companyCountry", "Country", Text),
			required("startDate", "Start date", Date),
			field("endDate", "End date", Date),
			field("isCurrent", "Current position", Checkbox),
			field("description", "Description", TextArea),
			field("achievements", "Achievements", TextArea),
			field("skillsUsed", "Skills used", Text),
		}},
	}},
	"skill": {Groups: []Group{
		{Title: "Skill", Fields: []Field{
			choice("category", "Category", i18n.GroupSkillCategory, true),
			required("name", "Name", Text),
			choice("proficiency", "Proficiency", i18n.GroupProficiency, true),
			field("yearsOfExperience", "Years of experience", Number),
			field("description", "Description", TextArea),
		}},
	}},
	"publication": {Groups: []Group{
		{Title: "Publication", Fields: []Field{
			choice("publicationType", "Publication type", i18n.GroupPublicationType, true),
			required("title", "Title", Text),
			required("authors", "Authors", Text),
			required("publicationVenue", "Venue", Text),
			required("publicationDate", "Publication date", Date),
			field("volume", "Volume", Text),
			field("issue", "Issue", Text),
			field("pages", "Pages", Text),
			field("doi", "DOI", Text),
			field("url", "URL", URL),
			field("abstract", "Abstract", TextArea),
			field("keywords", "Keywords", Text),
		}},
	}},
	"award": {Groups: []Group{
		{Title: "Award", Fields: []Field{
			choice("awardType", "Award type", i18n.GroupAwardType, true),
			required("title", "Title", Text),
			required("issuingOrganization", "Issuing organization", Text),
			required("dateReceived", "Date received", Date),
			field("description", "Description", TextArea),
		}},
	}},
}

// Names lists the known forms.
func Names() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	return names
}

// Get returns the named form with labels and choices in loc. The returned
// form is a fresh copy.
func Get(loc i18n.Locale, name string) (Form, bool) {
	schema, ok := schemas[name]
	if !ok {
		return Form{}, false
	}
	form := Form{Name: name, Groups: make([]Group, len(schema.Groups))}
	for gi, g := range schema.Groups {
		fields := make([]Field, len(g.Fields))
		for fi, f := range g.Fields {
			f.Label = i18n.T(loc, f.Label)
			if f.enum != "" {
				f.Choices = Choices(loc, f.enum)
			}
			fields[fi] = f
		}
		form.Groups[gi] = Group{Title: i18n.T(loc, g.Title), Fields: fields}
	}
	return form, true
}

// Choices returns every key of an enum group with its label in loc, in
// declaration order. Unknown groups give nil.
func Choices(loc i18n.Locale, group string) []Choice {
	keys, ok := enums[group]
	if !ok {
		return nil
	}
	out := make([]Choice, len(keys))
	for i, k := range keys {
		out[i] = Choice{Value: k, Label: i18n.Label(loc, group, k)}
	}
	return out
}

var enums = map[string][]string{
	i18n.GroupRegion:          keys(model.AllRegions),
	i18n.GroupEducationLevel:  keys(model.AllEducationLevels),
	i18n.GroupUniversityType:  keys(model.AllUniversityTypes),
	i18n.GroupProgramLevel:    keys(model.AllProgramLevels),
	i18n.GroupScholarshipType: keys(model.AllScholarshipTypes),
	i18n.GroupStatus:          keys(model.AllApplicationStatuses),
	i18n.GroupPriority:        keys(model.AllPriorities),
	i18n.GroupDocumentType:    keys(model.AllDocumentTypes),
	i18n.GroupDocumentStatus:  keys(model.AllDocumentStatuses),
	i18n.GroupEmailType:       keys(model.AllEmailTypes),
	i18n.GroupTemplateType:    keys(model.AllTemplateTypes),
	i18n.GroupFormality:       keys(model.AllFormalities),
	i18n.GroupTipContext:      keys(model.AllTipContexts),
	i18n.GroupCVTemplateType:  keys(model.AllCVTemplateTypes),
	i18n.GroupCountryStyle:    keys(model.AllCountryStyles),
	i18n.GroupDegreeLevel:     keys(model.AllDegreeLevels),
	i18n.GroupExperienceType:  keys(model.AllExperienceTypes),
	i18n.GroupSkillCategory:   keys(model.AllSkillCategories),
	i18n.GroupProficiency:     keys(model.AllProficiencies),
	i18n.GroupPublicationType: keys(model.AllPublicationTypes),
	i18n.GroupAwardType:       keys(model.AllAwardTypes),
	i18n.GroupGuideType:       keys(model.AllGuideTypes),
	i18n.GroupDifficulty:      keys(model.AllDifficulties),
}

func keys[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
