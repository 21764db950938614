package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/model"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

func testTrackerService(t *testing.T, policy model.TransitionPolicy) (*TrackerService, *fakeTrackers, *metrics.Metrics) {
	t.Helper()
	cat := testCatalog()
	trackers := newFakeTrackers(cat)
	m := metrics.New()
	return NewTrackerService(trackers, cat, policy, m, testLogger()), trackers, m
}

func createApplication(t *testing.T, svc *TrackerService, userID string, in TrackerInput) *model.Tracker {
	t.Helper()
	if in.UniversityID == "" {
		in.UniversityID = "u-tum"
	}
	if in.ApplicationTitle == "" {
		in.ApplicationTitle = "MSc application"
	}
	tr, err := svc.Create(context.Background(), userID, in)
	require.NoError(t, err)
	return tr
}

func TestTrackerCreate_AlwaysPlanning(t *testing.T) {
	svc, _, m := testTrackerService(t, nil)

	tr := createApplication(t, svc, alice, TrackerInput{Status: model.StatusAccepted})

	assert.Equal(t, model.StatusPlanning, tr.Status)
	assert.Equal(t, model.PriorityMedium, tr.Priority)
	require.NotNil(t, tr.University)
	assert.Equal(t, "TU Munich", tr.University.Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApplicationsCreated))
}

func TestTrackerCreate_IgnoresUnknownStatus(t *testing.T) {
	svc, _, _ := testTrackerService(t, nil)
	ctx := context.Background()

	tr := createApplication(t, svc, alice, TrackerInput{Status: "bogus"})
	assert.Equal(t, model.StatusPlanning, tr.Status)

	_, err := svc.Update(ctx, alice, tr.ID, TrackerInput{ApplicationTitle: "MSc application", Status: "bogus"})
	require.True(t, errors.Is(err, apperror.ErrValidation), "error = %v", err)
	assert.Contains(t, appErrorFields(t, err), "status")
}

func TestTrackerCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    TrackerInput
		field string
	}{
		{"missing title", TrackerInput{UniversityID: "u-tum"}, "applicationTitle"},
		{"unknown university", TrackerInput{UniversityID: "u-nowhere", ApplicationTitle: "A"}, "universityId"},
		{"unknown program", TrackerInput{UniversityID: "u-tum", ApplicationTitle: "A", ProgramID: strPtr("p-nowhere")}, "programId"},
		{"program of another university", TrackerInput{UniversityID: "u-tum", ApplicationTitle: "A", ProgramID: strPtr("p-cs2")}, "programId"},
		{"bad priority", TrackerInput{UniversityID: "u-tum", ApplicationTitle: "A", Priority: "urgent"}, "priority"},
		{"negative fee", TrackerInput{UniversityID: "u-tum", ApplicationTitle: "A",
			ApplicationFee: decimal.NewNullDecimal(decimal.NewFromInt(-5))}, "applicationFee"},
		{"bad supervisor email", TrackerInput{UniversityID: "u-tum", ApplicationTitle: "A", SupervisorEmail: "prof@"}, "supervisorEmail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := testTrackerService(t, nil)

			_, err := svc.Create(context.Background(), alice, tt.in)
			require.True(t, errors.Is(err, apperror.ErrValidation), "error = %v", err)
			assert.Contains(t, appErrorFields(t, err), tt.field)
			assert.Empty(t, store.trackers)
		})
	}
}

func TestTrackerCreate_BlankProgramIgnored(t *testing.T) {
	svc, _, _ := testTrackerService(t, nil)

	tr := createApplication(t, svc, alice, TrackerInput{ProgramID: strPtr("  ")})
	assert.Nil(t, tr.ProgramID)
}

func TestTrackerUpdate_PermissiveAcceptsAnyStatus(t *testing.T) {
	svc, _, m := testTrackerService(t, nil)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{})

	// outcomes recorded out of order are fine by default
	for _, st := range []model.ApplicationStatus{model.StatusAccepted, model.StatusPlanning, model.StatusRejected, model.StatusRejected} {
		got, err := svc.Update(ctx, alice, tr.ID, TrackerInput{ApplicationTitle: "MSc application", Status: st})
		require.NoError(t, err, "status %s", st)
		assert.Equal(t, st, got.Status)
	}
	// one series per target status, and the repeated rejected is not counted
	assert.Equal(t, 3, testutil.CollectAndCount(m.StatusChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusChanges.WithLabelValues(string(model.StatusRejected))))
}

func TestTrackerUpdate_StrictPolicy(t *testing.T) {
	svc, _, _ := testTrackerService(t, model.DefaultStrictTransitions)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{})

	_, err := svc.Update(ctx, alice, tr.ID, TrackerInput{ApplicationTitle: "A", Status: model.StatusAccepted})
	require.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Contains(t, appErrorFields(t, err), "status")

	got, err := svc.Update(ctx, alice, tr.ID, TrackerInput{ApplicationTitle: "A", Status: model.StatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPreparing, got.Status)
}

func TestTrackerUpdate_EmptyKeepsStatusAndPriority(t *testing.T) {
	svc, _, _ := testTrackerService(t, nil)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{Priority: model.PriorityHigh})

	got, err := svc.Update(ctx, alice, tr.ID, TrackerInput{ApplicationTitle: "Renamed", Notes: "n"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPlanning, got.Status)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, "Renamed", got.ApplicationTitle)
	assert.Equal(t, "u-tum", got.UniversityID)
}

func TestTracker_OtherUserSeesNotFound(t *testing.T) {
	svc, _, _ := testTrackerService(t, nil)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{})

	_, err := svc.Detail(ctx, bob, tr.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	_, err = svc.Update(ctx, bob, tr.ID, TrackerInput{ApplicationTitle: "x"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, bob, tr.ID), apperror.ErrNotFound))
	_, err = svc.AddDocument(ctx, bob, tr.ID, DocumentInput{DocumentType: model.DocCV, Title: "CV"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestTrackerList_PageAndSort(t *testing.T) {
	svc, store, _ := testTrackerService(t, nil)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		createApplication(t, svc, alice, TrackerInput{})
	}
	createApplication(t, svc, bob, TrackerInput{})

	p, err := svc.List(ctx, alice, TrackerQuery{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Items, TrackersPageSize)
	assert.Equal(t, 12, p.Total)

	p2, err := svc.List(ctx, alice, TrackerQuery{Page: 2, Recent: true})
	require.NoError(t, err)
	assert.Len(t, p2.Items, 2)
	assert.NotEmpty(t, store.trackers)
}

func TestDocuments_Defaults(t *testing.T) {
	svc, _, _ := testTrackerService(t, nil)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{})

	doc, err := svc.AddDocument(ctx, alice, tr.ID, DocumentInput{DocumentType: model.DocTranscript, Title: " Transcript "})
	require.NoError(t, err)
	assert.Equal(t, model.DocStatusDraft, doc.Status)
	assert.Equal(t, 1, doc.Version)
	assert.True(t, doc.IsRequired)
	assert.Equal(t, "Transcript", doc.Title)

	no := false
	updated, err := svc.UpdateDocument(ctx, alice, tr.ID, doc.ID, DocumentInput{
		DocumentType: model.DocTranscript, Title: "Transcript", Status: model.DocStatusReady, IsRequired: &no,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DocStatusReady, updated.Status)
	assert.Equal(t, 1, updated.Version, "version never auto-increments")
	assert.False(t, updated.IsRequired)

	_, err = svc.AddDocument(ctx, alice, tr.ID, DocumentInput{DocumentType: "selfie", Title: "x"})
	assert.Contains(t, appErrorFields(t, err), "documentType")

	d, err := svc.Detail(ctx, alice, tr.ID)
	require.NoError(t, err)
	assert.Len(t, d.Documents, 1)
	assert.NotNil(t, d.Emails)

	require.NoError(t, svc.DeleteDocument(ctx, alice, tr.ID, doc.ID))
	assert.True(t, errors.Is(svc.DeleteDocument(ctx, alice, tr.ID, doc.ID), apperror.ErrNotFound))
}

func TestEmails_LogListAndRespond(t *testing.T) {
	svc, _, m := testTrackerService(t, nil)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{})

	in := EmailInput{
		EmailType: model.EmailInquiry, RecipientEmail: "prof@uni.example",
		Subject: "PhD position", Body: "Dear Professor", Notes: "first",
	}
	first, err := svc.LogEmail(ctx, alice, in)
	require.NoError(t, err)
	in.TrackerID = strPtr(tr.ID)
	in.Subject = "Follow up"
	second, err := svc.LogEmail(ctx, alice, in)
	require.NoError(t, err)
	assert.False(t, second.SentDate.IsZero())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EmailsLogged))

	all, err := svc.Emails(ctx, alice, EmailQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "Follow up", all.Items[0].Subject, "newest first")

	linked, err := svc.Emails(ctx, alice, EmailQuery{TrackerID: tr.ID})
	require.NoError(t, err)
	assert.Len(t, linked.Items, 1)

	got, err := svc.RecordResponse(ctx, alice, first.ID, ResponseInput{
		ResponseReceived: true, ResponseDate: model.NewDate(2026, 3, 1),
	})
	require.NoError(t, err)
	assert.True(t, got.ResponseReceived)
	assert.Equal(t, "first", got.Notes, "notes kept when not sent")
	assert.Equal(t, "PhD position", got.Subject)

	_, err = svc.RecordResponse(ctx, bob, first.ID, ResponseInput{ResponseReceived: true})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestLogEmail_ForeignTracker(t *testing.T) {
	svc, _, _ := testTrackerService(t, nil)
	ctx := context.Background()
	tr := createApplication(t, svc, alice, TrackerInput{})

	_, err := svc.LogEmail(ctx, bob, EmailInput{
		TrackerID: strPtr(tr.ID), EmailType: model.EmailOther,
		RecipientEmail: "x@y.example", Subject: "s", Body: "b",
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation), "error = %v", err)
}
