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

var _ repository.ComposerRepository = (*ComposerStore)(nil)

// ComposerStore reads email templates and communication tips.
type ComposerStore struct {
	conn *sql.DB
}

var templateFields = []string{
	"id", "name", "template_type", "formality_level", "target_country", "subject_line",
	"greeting", "body", "closing", "signature", "description", "cultural_notes",
	"variables", "is_active", "translations", "created_at", "updated_at",
}

func templateDest(t *model.EmailTemplate) []any {
	return []any{
		&t.ID, &t.Name, &t.TemplateType, &t.FormalityLevel, &t.TargetCountry, &t.SubjectLine,
		&t.Greeting, &t.Body, &t.Closing, &t.Signature, &t.Description, &t.CulturalNotes,
		&t.Variables, &t.IsActive, &t.Translations, &t.CreatedAt, &t.UpdatedAt,
	}
}

var tipFields = []string{
	"id", "title", "context", "country", "content", "example", "kurdish_context",
	"common_mistakes", "is_active", "priority", "translations", "created_at",
}

func tipDest(t *model.CommunicationTip) []any {
	return []any{
		&t.ID, &t.Title, &t.Context, &t.Country, &t.Content, &t.Example, &t.KurdishContext,
		&t.CommonMistakes, &t.IsActive, &t.Priority, &t.Translations, &t.CreatedAt,
	}
}

func (s *ComposerStore) ListTemplates(ctx context.Context, f repository.TemplateFilter) ([]model.EmailTemplate, error) {
	var w where
	w.add("is_active = 1")
	w.eq("template_type", string(f.Type))
	w.eq("formality_level", string(f.Formality))

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", templateFields)+` FROM email_templates`+w.String()+
			` ORDER BY template_type, formality_level, name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing email templates: %w", err)
	}
	defer rows.Close()
	var out []model.EmailTemplate
	for rows.Next() {
		var t model.EmailTemplate
		if err := rows.Scan(templateDest(&t)...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning email template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTemplate returns an active template.
func (s *ComposerStore) GetTemplate(ctx context.Context, id string) (*model.EmailTemplate, error) {
	var t model.EmailTemplate
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+columns("", templateFields)+` FROM email_templates WHERE id = ? AND is_active = 1`, id,
	).Scan(templateDest(&t)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("template", id)
		}
		return nil, fmt.Errorf("sqlite: getting email template %s: %w", id, err)
	}
	return &t, nil
}

func (s *ComposerStore) ListTips(ctx context.Context, f repository.TipFilter) ([]model.CommunicationTip, error) {
	var w where
	w.add("is_active = 1")
	w.eq("context", string(f.Context))

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns("", tipFields)+` FROM communication_tips`+w.String()+
			` ORDER BY priority DESC, title`+limit(repository.ListOptions{Limit: f.Limit}), w.args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tips: %w", err)
	}
	defer rows.Close()
	var out []model.CommunicationTip
	for rows.Next() {
		var t model.CommunicationTip
		if err := rows.Scan(tipDest(&t)...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tip: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ===== SEEDING =====

// UpsertTemplate stores t keyed by name.
func (s *ComposerStore) UpsertTemplate(ctx context.Context, t *model.EmailTemplate) error {
	stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	id, err := upsert(ctx, s.conn, "email_templates", []string{"name"}, templateFields, values(templateDest(t)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting email template %q: %w", t.Name, err)
	}
	t.ID = id
	return nil
}

// UpsertTip stores t keyed by title.
func (s *ComposerStore) UpsertTip(ctx context.Context, t *model.CommunicationTip) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}
	id, err := upsert(ctx, s.conn, "communication_tips", []string{"title"}, tipFields, values(tipDest(t)))
	if err != nil {
		return fmt.Errorf("sqlite: upserting tip %q: %w", t.Title, err)
	}
	t.ID = id
	return nil
}
