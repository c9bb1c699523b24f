package wizard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonathan/resume-wizard/internal/customize"
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/jonathan/resume-wizard/internal/templates"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	store  *wizard.MemoryStore
	wizard *wizard.Wizard
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	catalog, err := templates.Builtin()
	require.NoError(t, err)

	store := wizard.NewMemoryStore()
	n := 0
	w := wizard.New(
		wizard.NewCarrier(store, "session-1", nil),
		customize.NewEngine(catalog),
		wizard.WithClock(func() time.Time { return fixedNow }),
		wizard.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return &harness{store: store, wizard: w}
}

func (h *harness) raw(t *testing.T, key wizard.Key) []byte {
	t.Helper()
	v, err := h.store.Load(context.Background(), "session-1", string(key))
	require.NoError(t, err)
	return v
}

func ada() types.ResumeDocument {
	return types.ResumeDocument{
		Title: "SWE Resume",
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0100",
		},
	}
}

func TestWizard_EndToEnd(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.wizard.Create(ctx, ada())
	require.NoError(t, err)
	require.True(t, res.OK(), "create failed: %v", res.Errors)
	assert.Equal(t, wizard.StepTemplates, res.Next)
	assert.Equal(t, "id-1", res.Document.ID)
	assert.Equal(t, fixedNow, res.Document.CreatedAt)
	assert.NotNil(t, h.raw(t, wizard.KeyCurrentResume))

	res, err = h.wizard.ChooseTemplate(ctx, "professional")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "professional", res.Document.TemplateID)
	assert.Equal(t, "SWE Resume", res.Document.Title)

	res, err = h.wizard.Customize(ctx, types.DefaultStyleConfiguration())
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, 26, res.Style.Banner.FontSize)

	cfg := types.DefaultStyleConfiguration()
	cfg.Layout.Columns = 2
	before := h.raw(t, wizard.KeyTemplateCustomizations)

	res, err = h.wizard.Customize(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, res.OK())
	require.NotNil(t, res.Rejection)
	assert.Equal(t, "layout.columns", res.Rejection.Field)
	assert.Equal(t, "professional", res.Rejection.TemplateID)
	assert.Nil(t, res.Style, "a rejection must not yield a forced one-column style")
	assert.Equal(t, wizard.StepCustomize, res.Next)
	assert.Equal(t, before, h.raw(t, wizard.KeyTemplateCustomizations), "rejection must not touch stored state")

	res, err = h.wizard.Finalize(ctx)
	require.NoError(t, err)
	require.True(t, res.OK(), "finalize failed: %v", res.Errors)
	assert.Equal(t, wizard.StepDone, res.Next)
	assert.Equal(t, "Ada Lovelace", res.Document.PersonalInfo.FullName())
	assert.Equal(t, 1, res.Style.Columns)

	for _, key := range wizard.Keys {
		assert.Nil(t, h.raw(t, key), "%s must be cleared", key)
	}
}

func TestWizard_CreateBlocksOnValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	doc := ada()
	doc.PersonalInfo.Email = "ada"
	doc.Title = " "

	res, err := h.wizard.Create(ctx, doc)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, wizard.StepCreate, res.Next)
	assert.Equal(t, "Email is invalid", res.Errors["personalInfo.email"])
	assert.Equal(t, "Resume title is required", res.Errors["title"])
	assert.Nil(t, h.raw(t, wizard.KeyCurrentResume))
}

func TestWizard_CreateNormalizes(t *testing.T) {
	h := newHarness(t)
	doc := ada()
	doc.Title = "  SWE Resume  "
	doc.Experience = []types.Experience{{Company: "Engines", StartDate: "2020-01", EndDate: "2021-01", Current: true}}

	res, err := h.wizard.Create(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, res.OK())

	assert.Equal(t, "SWE Resume", res.Document.Title)
	assert.Empty(t, res.Document.Experience[0].EndDate)
	assert.NotEmpty(t, res.Document.Experience[0].ID)
}

func TestWizard_CreateAgainReplacesWorkingCopy(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	first, err := h.wizard.Create(ctx, ada())
	require.NoError(t, err)
	require.True(t, first.OK())
	_, err = h.wizard.ChooseTemplate(ctx, "modern")
	require.NoError(t, err)

	corrected := ada()
	corrected.Title = "Corrected"
	corrected.PersonalInfo.Email = "ada.lovelace@example.org"
	res, err := h.wizard.Create(ctx, corrected)
	require.NoError(t, err)
	require.True(t, res.OK(), "create failed: %v", res.Errors)
	assert.Equal(t, wizard.StepTemplates, res.Next)

	res, err = h.wizard.Preview(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.Document)
	assert.Equal(t, "Corrected", res.Document.Title)
	assert.Equal(t, "ada.lovelace@example.org", res.Document.PersonalInfo.Email)
	assert.Equal(t, "modern", res.Document.TemplateID, "an earlier template choice is kept")
	assert.Equal(t, first.Document.ID, res.Document.ID)
	assert.Equal(t, "modern", res.Style.TemplateID)
}

func TestWizard_ChooseTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown template", func(t *testing.T) {
		h := newHarness(t)
		res, err := h.wizard.ChooseTemplate(ctx, "baroque")
		require.NoError(t, err)
		assert.Equal(t, "Template is invalid", res.Errors["templateId"])
		assert.Nil(t, h.raw(t, wizard.KeyResumeData))
	})

	t.Run("without a document starts fresh", func(t *testing.T) {
		h := newHarness(t)
		res, err := h.wizard.ChooseTemplate(ctx, "modern")
		require.NoError(t, err)
		require.True(t, res.OK())
		assert.Equal(t, "modern", res.Document.TemplateID)
		assert.NotEmpty(t, res.Document.ID)
	})

	t.Run("prefers the working copy", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.wizard.Create(ctx, ada())
		require.NoError(t, err)
		_, err = h.wizard.Edit(ctx, resume.Patch{"title": "Edited"})
		require.NoError(t, err)

		res, err := h.wizard.ChooseTemplate(ctx, "modern")
		require.NoError(t, err)
		assert.Equal(t, "Edited", res.Document.Title)
	})
}

func TestWizard_Edit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.wizard.Create(ctx, ada())
	require.NoError(t, err)

	res, err := h.wizard.Edit(ctx, resume.Patch{
		"personalInfo.jobTitle": "Analyst",
		"experience": []map[string]any{
			{"company": " Engines ", "jobTitle": "Engineer", "startDate": "2020-01-01", "current": true},
		},
	})
	require.NoError(t, err)
	require.True(t, res.OK(), "edit failed: %v", res.Errors)
	assert.Equal(t, wizard.StepTemplates, res.Next)
	assert.Equal(t, "Analyst", res.Document.PersonalInfo.JobTitle)
	assert.Equal(t, "Engines", res.Document.Experience[0].Company)
	assert.NotEmpty(t, res.Document.Experience[0].ID)

	stored := h.raw(t, wizard.KeyResumeData)
	assert.Contains(t, string(stored), `"jobTitle":"Analyst"`)
}

func TestWizard_EditBlocksAndKeepsState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.wizard.Create(ctx, ada())
	require.NoError(t, err)
	_, err = h.wizard.ChooseTemplate(ctx, "modern")
	require.NoError(t, err)
	before := h.raw(t, wizard.KeyResumeData)

	tests := []struct {
		name  string
		patch resume.Patch
		path  string
	}{
		{
			name: "date order",
			patch: resume.Patch{"experience": []types.Experience{
				{ID: "x", Company: "Engines", StartDate: "2023-06-01", EndDate: "2023-01-01"},
			}},
			path: "experience[0].dates",
		},
		{name: "bad path", patch: resume.Patch{"personalInfo.nickname": "Ada"}, path: "personalInfo.nickname"},
		{name: "cleared email", patch: resume.Patch{"personalInfo.email": ""}, path: "personalInfo.email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.wizard.Edit(ctx, tt.patch)
			require.NoError(t, err)
			assert.False(t, res.OK())
			assert.Contains(t, res.Errors, tt.path)
			assert.Equal(t, wizard.StepEdit, res.Next)
			assert.Equal(t, before, h.raw(t, wizard.KeyResumeData))
		})
	}
}

func TestWizard_CustomizeClampsBeforeSaving(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	cfg := types.DefaultStyleConfiguration()
	cfg.Typography.HeadingSize = 999
	cfg.Typography.BodySize = -5

	res, err := h.wizard.Customize(ctx, cfg)
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, 32, res.Config.Typography.HeadingSize)
	assert.Equal(t, 10, res.Config.Typography.BodySize)
	assert.Equal(t, "minimalist", res.Style.TemplateID)

	preview, err := h.wizard.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32, preview.Config.Typography.HeadingSize)
	assert.Equal(t, 40, preview.Style.Banner.FontSize)
}

func TestWizard_CustomizeInvalidConfig(t *testing.T) {
	h := newHarness(t)
	cfg := types.DefaultStyleConfiguration()
	cfg.Colors.Accent = "not-a-color"

	res, err := h.wizard.Customize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Contains(t, res.Errors, "colors.accent")
	assert.Nil(t, h.raw(t, wizard.KeyTemplateCustomizations))
}

func TestWizard_PreviewWithoutState(t *testing.T) {
	h := newHarness(t)

	res, err := h.wizard.Preview(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Nil(t, res.Document)
	require.NotNil(t, res.Style)
	assert.Equal(t, 26, res.Style.Banner.FontSize)
	assert.Equal(t, types.DefaultStyleConfiguration(), *res.Config)
}

func TestWizard_PreviewFallsBackOnRejection(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.wizard.ChooseTemplate(ctx, "modern")
	require.NoError(t, err)
	cfg := types.DefaultStyleConfiguration()
	cfg.Layout.Columns = 2
	res, err := h.wizard.Customize(ctx, cfg)
	require.NoError(t, err)
	require.True(t, res.OK())

	_, err = h.wizard.ChooseTemplate(ctx, "academic")
	require.NoError(t, err)

	res, err = h.wizard.Preview(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.Rejection)
	assert.Equal(t, "academic", res.Style.TemplateID)
	assert.Equal(t, 1, res.Style.Columns)
}

func TestWizard_FinalizeRequiresRenderable(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.wizard.Finalize(ctx)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors, "personalInfo.firstName")

	doc := ada()
	doc.PersonalInfo.Phone = ""
	_, err = h.wizard.Create(ctx, doc)
	require.NoError(t, err)

	res, err = h.wizard.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Phone is required", res.Errors["personalInfo.phone"])
	assert.Equal(t, "Template is required", res.Errors["templateId"])
	assert.NotNil(t, h.raw(t, wizard.KeyCurrentResume), "failed finalize keeps state")
}

func TestWizard_Reset(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.wizard.Create(ctx, ada())
	require.NoError(t, err)

	require.NoError(t, h.wizard.Reset(ctx))
	assert.Nil(t, h.raw(t, wizard.KeyCurrentResume))
}
