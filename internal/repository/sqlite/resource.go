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

var _ repository.ResourceRepository = (*ResourceStore)(nil)

// ResourceStore reads guides and their categories.
type ResourceStore struct {
	conn *sql.DB
}

var guideFields = []string{
	"id", "title", "guide_type", "category_id", "country_id", "university_id", "author_id",
	"difficulty_level", "summary", "content", "steps", "estimated_reading_time", "views",
	"helpful_votes", "slug", "meta_description", "keywords", "is_featured", "is_published",
	"translations", "created_at", "last_updated",
}

func guideDest(g *model.Guide) []any {
	return []any{
		&g.ID, &g.Title, &g.GuideType, &g.CategoryID, &g.CountryID, &g.UniversityID, &g.AuthorID,
		&g.DifficultyLevel, &g.Summary, &g.Content, &g.Steps, &g.EstimatedReadingTime, &g.Views,
		&g.HelpfulVotes, &g.Slug, &g.MetaDescription, &g.Keywords, &g.IsFeatured, &g.IsPublished,
		&g.Translations, &g.CreatedAt, &g.LastUpdated,
	}
}

var categoryFields = []string{
	"id", "name", "description", "icon", "color", "parent_id", "display_order", "is_active",
	"translations", "created_at",
}

func categoryDest(c *model.Category) []any {
	return []any{
		&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color, &c.ParentID, &c.DisplayOrder, &c.IsActive,
		&c.Translations, &c.CreatedAt,
	}
}

func guideOrder(o repository.GuideOrder) string {
	if o == repository.OrderNewest {
		return ` ORDER BY created_at DESC, id DESC`
	}
	return ` ORDER BY is_featured DESC, created_at DESC, id DESC`
}

// ListGuides returns published guides matching f.
func (s *ResourceStore) ListGuides(ctx context.Context, f repository.GuideFilter) ([]model.Guide, int, error) {
	var w where
	w.add("is_published = 1")
	w.search(f.Search, "title", "summary", "content", "keywords")
	w.eq("category_id", f.CategoryID)
	w.eq("guide_type", string(f.Type))
	w.eq("difficulty_level", string(f.Difficulty))
	w.eq("country_id", f.CountryID)
	if f.FeaturedOnly {
		w.add("is_featured = 1")
	}
	if f.ExcludeID != "" {
		w.add("id <> ?", f.ExcludeID)
	}

	total, err := count(ctx, s.conn, `SELECT COUNT(*) FROM guides`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting guides: %w", err)
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", guideFields)+` FROM guides`+w.String()+guideOrder(f.Order)+limit(f.ListOptions),
		w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing guides: %w", err)
	}
	defer rows.Close()
	var out []model.Guide
	for rows.Next() {
		var g model.Guide
		if err := rows.Scan(guideDest(&g)...); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning guide: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing guides: %w", err)
	}
	return out, total, nil
}

// increment adds one to column of the published guide with slug and returns
// the guide as it is after the update.
//
// ATOMIC COUNTERS:
// Reading views, adding one in Go and writing it back loses updates when two
// requests interleave. "SET views = views + 1" is evaluated by SQLite under
// its write lock, so N concurrent calls always add exactly N. RETURNING hands
// back the row from the same statement.
func (s *ResourceStore) increment(ctx context.Context, column, slug string) (*model.Guide, error) {
	var g model.Guide
	err := s.conn.QueryRowContext(ctx,
		`UPDATE guides SET `+column+` = `+column+` + 1
		 WHERE slug = ? AND is_published = 1
		 RETURNING `+columns("", guideFields), slug,
	).Scan(guideDest(&g)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("guide", slug)
		}
		return nil, fmt.Errorf("sqlite: incrementing %s of guide %s: %w", column, slug, err)
	}
	return &g, nil
}

func (s *ResourceStore) IncrementViews(ctx context.Context, slug string) (*model.Guide, error) {
	return s.increment(ctx, "views", slug)
}

func (s *ResourceStore) IncrementHelpful(ctx context.Context, slug string) (*model.Guide, error) {
	return s.increment(ctx, "helpful_votes", slug)
}

func (s *ResourceStore) CountGuides(ctx context.Context) (int, error) {
	n, err := count(ctx, s.conn, `SELECT COUNT(*) FROM guides WHERE is_published = 1`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting guides: %w", err)
	}
	return n, nil
}

func (s *ResourceStore) ListTopCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", categoryFields)+` FROM categories
		 WHERE is_active = 1 AND parent_id IS NULL ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories: %w", err)
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(categoryDest(&c)...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCategory returns an active category.
func (s *ResourceStore) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", categoryFields)+` FROM categories WHERE id = ? AND is_active = 1`, id,
	).Scan(categoryDest(&c)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("category", id)
		}
		return nil, fmt.Errorf("sqlite: getting category %s: %w", id, err)
	}
	return &c, nil
}

// ===== SEEDING =====

// UpsertCategory stores c keyed by name.
func (s *ResourceStore) UpsertCategory(ctx context.Context, c *model.Category) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now()
	}
	if c.Color == "" {
		c.Color = model.DefaultCategoryColor
	}
	id, err := upsert(ctx, s.conn, "categories", []string{"name"}, categoryFields, values(categoryDest(c)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting category %q: %w", c.Name, err)
	}
	c.ID = id
	return nil
}

// UpsertGuide stores g keyed by slug. Counters are kept on update: a reseed
// must not reset views.
func (s *ResourceStore) UpsertGuide(ctx context.Context, g *model.Guide) error {
	stamp(&g.ID, &g.CreatedAt, &g.LastUpdated)

	all := guideDest(g)
	fields := make([]string, 0, len(guideFields))
	dest := make([]any, 0, len(guideFields))
	for i, f := range guideFields {
		if f == "views" || f == "helpful_votes" {
			continue
		}
		fields = append(fields, f)
		dest = append(dest, all[i])
	}
	id, err := upsert(ctx, s.conn, "guides", []string{"slug"}, fields, values(dest))
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("guide", g.Slug)
		}
		return fmt.Errorf("sqlite: upserting guide %s: %w", g.Slug, err)
	}
	g.ID = id
	return nil
}
