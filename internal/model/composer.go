package model

import (
	"time"

	"github.com/sakif/applyhelp/internal/i18n"
)

// EmailTemplate is a reusable email skeleton. Variables lists the
// placeholder names ({name}, {university}...) the body expects; the server
// never substitutes them.
type EmailTemplate struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	TemplateType   TemplateType      `json:"templateType"`
	FormalityLevel Formality         `json:"formalityLevel"`
	TargetCountry  string            `json:"targetCountry"`
	SubjectLine    string            `json:"subjectLine"`
	Greeting       string            `json:"greeting"`
	Body           string            `json:"body"`
	Closing        string            `json:"closing"`
	Signature      string            `json:"signature"`
	Description    string            `json:"description"`
	CulturalNotes  string            `json:"culturalNotes"`
	Variables      StringList        `json:"variables"`
	IsActive       bool              `json:"isActive"`
	Translations   i18n.Translations `json:"translations,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (t *EmailTemplate) Localize(loc i18n.Locale) {
	t.Name = t.Translations.Get(loc, "name", t.Name)
	t.SubjectLine = t.Translations.Get(loc, "subject_line", t.SubjectLine)
	t.Greeting = t.Translations.Get(loc, "greeting", t.Greeting)
	t.Body = t.Translations.Get(loc, "body", t.Body)
	t.Closing = t.Translations.Get(loc, "closing", t.Closing)
	t.CulturalNotes = t.Translations.Get(loc, "cultural_notes", t.CulturalNotes)
}

type CommunicationTip struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Context        TipContext        `json:"context"`
	Country        string            `json:"country"`
	Content        string            `json:"content"`
	Example        string            `json:"example"`
	KurdishContext string            `json:"kurdishContext"`
	CommonMistakes string            `json:"commonMistakes"`
	IsActive       bool              `json:"isActive"`
	Priority       int               `json:"priority"`
	Translations   i18n.Translations `json:"translations,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func (t *CommunicationTip) Localize(loc i18n.Locale) {
	t.Title = t.Translations.Get(loc, "title", t.Title)
	t.Content = t.Translations.Get(loc, "content", t.Content)
	t.Example = t.Translations.Get(loc, "example", t.Example)
}
