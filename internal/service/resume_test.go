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

func testResumeService(t *testing.T) (*ResumeService, *fakeResumes, *model.User) {
	t.Helper()
	users := newFakeUsers()
	u := &model.User{
		Username: "rojda", FirstName: "Rojda", LastName: "Aziz",
		KurdishName: "ڕۆژدا", Email: "rojda@example.com", PhoneNumber: "+964",
	}
	require.NoError(t, users.Create(context.Background(), u))
	resumes := newFakeResumes()
	resumes.templates = []model.CVTemplate{{ID: "cv-eu", Name: "EU Academic", IsActive: true}}
	return NewResumeService(resumes, users, testLogger()), resumes, u
}

func validEducation() model.Education {
	return model.Education{
		DegreeLevel:     model.DegreeMaster,
		DegreeTitle:     "MSc",
		FieldOfStudy:    "Computer Science",
		InstitutionName: "KTH",
		StartDate:       model.NewDate(2022, 9, 1),
	}
}

func TestResumeCreate_PrefillsFromAccount(t *testing.T) {
	svc, _, u := testResumeService(t)

	r, err := svc.Create(context.Background(), u.ID, CreateResumeInput{Title: " Academic CV ", TemplateID: strPtr("cv-eu")})
	require.NoError(t, err)
	assert.Equal(t, "Academic CV", r.Title)
	assert.Equal(t, "Rojda Aziz", r.FullName)
	assert.Equal(t, "ڕۆژدا", r.KurdishName)
	assert.Equal(t, "rojda@example.com", r.Email)

	_, err = svc.Create(context.Background(), u.ID, CreateResumeInput{})
	assert.Contains(t, appErrorFields(t, err), "title")
}

func TestResumeDetail_MissingTemplateIgnored(t *testing.T) {
	svc, _, u := testResumeService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "CV", TemplateID: strPtr("cv-gone")})
	require.NoError(t, err)

	d, err := svc.Detail(ctx, u.ID, r.ID)
	require.NoError(t, err)
	assert.Nil(t, d.Template)
	assert.Equal(t, r.ID, d.Resume.ID)
	assert.NotNil(t, d.Education)
}

func TestResumeUpdate_Validation(t *testing.T) {
	svc, _, u := testResumeService(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "CV"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, u.ID, r.ID, UpdateResumeInput{Title: "CV", FullName: "R", Email: "bad", Website: "nope"})
	fields := appErrorFields(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "website")

	got, err := svc.Update(ctx, u.ID, r.ID, UpdateResumeInput{
		Title: "CV v2", FullName: "Rojda Aziz", Email: "r@example.com", IsPrimary: true,
		Website: "https://rojda.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "CV v2", got.Title)
	assert.True(t, got.IsPrimary)
}

func TestSaveEducation_WritesUnderPathResume(t *testing.T) {
	svc, store, u := testResumeService(t)
	ctx := context.Background()
	mine, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "Mine"})
	require.NoError(t, err)

	e := validEducation()
	e.ResumeID = "someone-elses-resume"
	saved, err := svc.SaveEducation(ctx, u.ID, mine.ID, "", e)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, saved.ResumeID, "path decides the resume")
	assert.NotEmpty(t, saved.ID)

	e.DegreeTitle = "MSc Informatics"
	updated, err := svc.SaveEducation(ctx, u.ID, mine.ID, saved.ID, e)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "MSc Informatics", store.education[saved.ID].DegreeTitle)
	assert.Len(t, store.education, 1)
}

func TestSaveEducation_Validation(t *testing.T) {
	svc, store, u := testResumeService(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "CV"})
	require.NoError(t, err)

	_, err = svc.SaveEducation(ctx, u.ID, r.ID, "", model.Education{DegreeLevel: "kindergarten"})
	require.True(t, errors.Is(err, apperror.ErrValidation))
	fields := appErrorFields(t, err)
	for _, f := range []string{"degreeLevel", "degreeTitle", "fieldOfStudy", "institutionName", "startDate"} {
		assert.Contains(t, fields, f)
	}
	assert.Empty(t, store.education)
}

func TestSaveSkill_ProficiencyEnum(t *testing.T) {
	svc, _, u := testResumeService(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "CV"})
	require.NoError(t, err)

	_, err = svc.SaveSkill(ctx, u.ID, r.ID, "", model.Skill{Category: model.SkillLanguage, Name: "Kurdish", Proficiency: "fluent"})
	assert.Contains(t, appErrorFields(t, err), "proficiency")

	sk, err := svc.SaveSkill(ctx, u.ID, r.ID, "", model.Skill{Category: model.SkillLanguage, Name: " Kurdish ", Proficiency: model.ProficiencyNative})
	require.NoError(t, err)
	assert.Equal(t, "Kurdish", sk.Name)
}

func TestSections_ForeignResume(t *testing.T) {
	svc, store, u := testResumeService(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "CV"})
	require.NoError(t, err)
	saved, err := svc.SaveEducation(ctx, u.ID, r.ID, "", validEducation())
	require.NoError(t, err)

	_, err = svc.SaveEducation(ctx, "intruder", r.ID, "", validEducation())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	err = svc.DeleteSectionItem(ctx, "intruder", r.ID, model.SectionEducation, saved.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Len(t, store.education, 1)

	err = svc.DeleteSectionItem(ctx, u.ID, r.ID, "hobbies", saved.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	require.NoError(t, svc.DeleteSectionItem(ctx, u.ID, r.ID, model.SectionEducation, saved.ID))
	assert.Empty(t, store.education)
}

func TestBuilder(t *testing.T) {
	svc, _, u := testResumeService(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, u.ID, CreateResumeInput{Title: "CV"})
	require.NoError(t, err)

	v, err := svc.Builder(ctx, u.ID, r.ID)
	require.NoError(t, err)
	require.NotNil(t, v.Resume)
	assert.Len(t, v.Templates, 1)

	v, err = svc.Builder(ctx, "intruder", r.ID)
	require.NoError(t, err)
	assert.Nil(t, v.Resume, "foreign resume is ignored")
}
