package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
	"github.com/sakif/applyhelp/internal/repository"
)

func TestTemplates_ActiveOrderedByTypeAndFormality(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := db.Composer()

	templates := []*model.EmailTemplate{
		{Name: "Visa", TemplateType: model.TemplateVisaInquiry, FormalityLevel: model.FormalityFormal, IsActive: true},
		{Name: "Inquiry formal", TemplateType: model.TemplateInitialInquiry, FormalityLevel: model.FormalityFormal, IsActive: true,
			Variables: model.StringList{"name", "professor"}},
		{Name: "Inquiry very formal", TemplateType: model.TemplateInitialInquiry, FormalityLevel: model.FormalityVeryFormal, IsActive: true},
		{Name: "Disabled", TemplateType: model.TemplateGeneralInquiry, FormalityLevel: model.FormalityInformal, IsActive: false},
	}
	for _, tpl := range templates {
		if err := store.UpsertTemplate(ctx, tpl); err != nil {
			t.Fatalf("UpsertTemplate() error = %v", err)
		}
	}

	got, err := store.ListTemplates(ctx, repository.TemplateFilter{})
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	want := []string{"Inquiry formal", "Inquiry very formal", "Visa"}
	if n := names(got, func(t model.EmailTemplate) string { return t.Name }); !equalStrings(n, want) {
		t.Errorf("order = %v, want %v", n, want)
	}
	if !equalStrings(got[0].Variables, []string{"name", "professor"}) {
		t.Errorf("Variables = %v", got[0].Variables)
	}

	visa, _ := store.ListTemplates(ctx, repository.TemplateFilter{Type: model.TemplateVisaInquiry})
	if len(visa) != 1 {
		t.Errorf("type filter returned %d, want 1", len(visa))
	}

	if _, err := store.GetTemplate(ctx, templates[3].ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetTemplate(inactive) error = %v, want ErrNotFound", err)
	}
}

func TestTips_PriorityThenTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := db.Composer()

	tips := []*model.CommunicationTip{
		{Title: "B tip", Context: model.TipEmail, Priority: 1, IsActive: true},
		{Title: "A tip", Context: model.TipEmail, Priority: 1, IsActive: true},
		{Title: "Urgent", Context: model.TipVisa, Priority: 5, IsActive: true},
		{Title: "Hidden", Context: model.TipEmail, Priority: 9, IsActive: false},
	}
	for _, tip := range tips {
		if err := store.UpsertTip(ctx, tip); err != nil {
			t.Fatalf("UpsertTip() error = %v", err)
		}
	}

	got, err := store.ListTips(ctx, repository.TipFilter{})
	if err != nil {
		t.Fatalf("ListTips() error = %v", err)
	}
	if n := names(got, func(t model.CommunicationTip) string { return t.Title }); !equalStrings(n, []string{"Urgent", "A tip", "B tip"}) {
		t.Errorf("order = %v", n)
	}

	limited, _ := store.ListTips(ctx, repository.TipFilter{Context: model.TipEmail, Limit: 1})
	if len(limited) != 1 || limited[0].Title != "A tip" {
		t.Errorf("limited = %v", limited)
	}
}
