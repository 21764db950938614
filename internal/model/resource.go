package model

import (
	"time"

	"github.com/sakif/applyhelp/internal/i18n"
)

// DefaultCategoryColor is used when a category has no color of its own.
const DefaultCategoryColor = "#007bff"

// Category groups guides. Categories nest through ParentID; deleting a parent
// removes its children.
type Category struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Icon         string            `json:"icon"`
	Color        string            `json:"color"`
	ParentID     *string           `json:"parentId"`
	DisplayOrder int               `json:"displayOrder"`
	IsActive     bool              `json:"isActive"`
	Translations i18n.Translations `json:"translations,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

func (c *Category) Localize(loc i18n.Locale) {
	c.Name = c.Translations.Get(loc, "name", c.Name)
	c.Description = c.Translations.Get(loc, "description", c.Description)
}

// Guide is a published article. It is addressed publicly by Slug; Views and
// HelpfulVotes are counters updated in place by the store.
type Guide struct {
	ID                   string            `json:"id"`
	Title                string            `json:"title"`
	GuideType            GuideType         `json:"guideType"`
	CategoryID           *string           `json:"categoryId"`
	CountryID            *string           `json:"countryId"`
	UniversityID         *string           `json:"universityId"`
	AuthorID             *string           `json:"authorId"`
	DifficultyLevel      Difficulty        `json:"difficultyLevel"`
	Summary              string            `json:"summary"`
	Content              string            `json:"content"`
	Steps                StringList        `json:"steps"`
	EstimatedReadingTime int               `json:"estimatedReadingTime"`
	Views                int64             `json:"views"`
	HelpfulVotes         int64             `json:"helpfulVotes"`
	Slug                 string            `json:"slug"`
	MetaDescription      string            `json:"metaDescription"`
	Keywords             string            `json:"keywords"`
	IsFeatured           bool              `json:"isFeatured"`
	IsPublished          bool              `json:"isPublished"`
	Translations         i18n.Translations `json:"translations,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	LastUpdated          time.Time         `json:"lastUpdated"`
}

func (g *Guide) Localize(loc i18n.Locale) {
	g.Title = g.Translations.Get(loc, "title", g.Title)
	g.Summary = g.Translations.Get(loc, "summary", g.Summary)
	g.Content = g.Translations.Get(loc, "content", g.Content)
}
