package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
)

func testComposer() *fakeComposer {
	return &fakeComposer{
		templates: []model.EmailTemplate{
			{ID: "t-inq", Name: "Inquiry", TemplateType: model.TemplateInitialInquiry, FormalityLevel: model.FormalityFormal, IsActive: true},
			{ID: "t-visa", Name: "Visa", TemplateType: model.TemplateVisaInquiry, FormalityLevel: model.FormalityVeryFormal, IsActive: true},
		},
		tips: []model.CommunicationTip{
			{ID: "tip-1", Title: "Be brief", Context: model.TipEmail, Priority: 5, IsActive: true},
			{ID: "tip-2", Title: "Dress well", Context: model.TipInterview, Priority: 4, IsActive: true},
			{ID: "tip-3", Title: "Follow up", Context: model.TipEmail, Priority: 3, IsActive: true},
			{ID: "tip-4", Title: "Visa docs", Context: model.TipVisa, Priority: 2, IsActive: true},
		},
	}
}

func testComposerService(t *testing.T) (*ComposerService, *fakeUsers, *fakeTrackers) {
	t.Helper()
	users := newFakeUsers()
	trackers := newFakeTrackers(testCatalog())
	return NewComposerService(testComposer(), trackers, users, testLogger()), users, trackers
}

func TestTemplate_SampleVariables(t *testing.T) {
	svc, users, _ := testComposerService(t)
	ctx := context.Background()
	u := &model.User{Username: "rojda", FirstName: "Rojda", LastName: "Aziz"}
	require.NoError(t, users.Create(ctx, u))

	anon, err := svc.Template(ctx, "t-inq", "")
	require.NoError(t, err)
	assert.Equal(t, "Your Name", anon.SampleVariables["name"])
	assert.Equal(t, "Sample University", anon.SampleVariables["university"])
	assert.Equal(t, "Professor Smith", anon.SampleVariables["professor"])

	named, err := svc.Template(ctx, "t-inq", u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rojda Aziz", named.SampleVariables["name"])

	_, err = svc.Template(ctx, "t-missing", "")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestCompose_SelectedTemplate(t *testing.T) {
	svc, _, _ := testComposerService(t)
	ctx := context.Background()

	v, err := svc.Compose(ctx, "t-visa")
	require.NoError(t, err)
	require.NotNil(t, v.Selected)
	assert.Equal(t, "Visa", v.Selected.Name)
	assert.Len(t, v.Templates, 2)

	v, err = svc.Compose(ctx, "t-missing")
	require.NoError(t, err)
	assert.Nil(t, v.Selected, "unknown template selects nothing")
}

func TestTemplates_Filter(t *testing.T) {
	svc, _, _ := testComposerService(t)

	got, err := svc.Templates(context.Background(), TemplateQuery{Type: model.TemplateVisaInquiry})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t-visa", got[0].ID)

	none, err := svc.Templates(context.Background(), TemplateQuery{Formality: model.FormalityInformal})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCommunicationsDashboard(t *testing.T) {
	svc, _, trackers := testComposerService(t)
	ctx := context.Background()

	for _, st := range []model.ApplicationStatus{
		model.StatusPlanning, model.StatusPreparing, model.StatusSubmitted,
		model.StatusUnderReview, model.StatusAccepted, model.StatusPreparing,
	} {
		require.NoError(t, trackers.Create(ctx, &model.Tracker{
			UserID: alice, UniversityID: "u-kth", ApplicationTitle: "A", Status: st, Priority: model.PriorityLow,
		}))
	}
	for i := 0; i < 6; i++ {
		require.NoError(t, trackers.CreateEmail(ctx, &model.EmailLog{UserID: alice, Subject: "s"}))
	}

	d, err := svc.Dashboard(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, d.RecentApplications, 5)
	assert.Len(t, d.RecentEmails, 5)
	assert.Equal(t, 4, d.PendingCount)
	require.Len(t, d.Tips, 3)
	assert.Equal(t, "Be brief", d.Tips[0].Title)

	empty, err := svc.Dashboard(ctx, bob)
	require.NoError(t, err)
	assert.NotNil(t, empty.RecentApplications)
	assert.NotNil(t, empty.RecentEmails)
	assert.Zero(t, empty.PendingCount)
}
