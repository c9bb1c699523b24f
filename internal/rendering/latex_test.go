package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/customize"
	"github.com/jonathan/resume-wizard/internal/templates"
	"github.com/jonathan/resume-wizard/internal/types"
)

func sampleDoc() *types.ResumeDocument {
	return &types.ResumeDocument{
		ID:         "doc-1",
		Title:      "Engineering",
		TemplateID: "modern",
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			City:      "London",
			JobTitle:  "Analyst & Engineer",
			Summary:   "Writes notes.\nLots of them.",
			GitHub:    "https://github.com/ada",
		},
		Experience: []types.Experience{
			{ID: "e1", Company: "Babbage & Co", JobTitle: "Engineer", StartDate: "2019-01", EndDate: "2020-06",
				Description: "Built the engine", Achievements: []string{"Cut costs by 30%"}},
			{ID: "e2", Company: "Analytical Society", JobTitle: "Fellow", StartDate: "2021-02", Current: true,
				Achievements: []string{"Published notes"}},
			{ID: "e3", Company: "Babbage & Co", JobTitle: "Engineer", StartDate: "2017-03", EndDate: "2018-01",
				Achievements: []string{"Debugged gears"}},
		},
		Education: []types.Education{
			{ID: "ed1", Institution: "Home", Degree: "BSc", Field: "Mathematics", StartDate: "2010-09", EndDate: "2014-06"},
		},
		Skills: []types.Skill{{Category: "Languages", Skills: []string{"Go", "C#"}}},
		Projects: []types.Project{
			{ID: "p1", Name: "Note G", Description: "First program", Technologies: []string{"Punch cards"}},
		},
		Languages: []types.Language{{ID: "l1", Language: "French", Proficiency: types.ProficiencyFluent}},
	}
}

func defaultStyle(t *testing.T, templateID string) types.ResolvedStyle {
	t.Helper()
	return customize.NewEngine(templates.MustBuiltin()).Default(templateID)
}

func TestParseTemplate_ValidTemplate(t *testing.T) {
	tmpl, err := parseTemplate(`\documentclass{article}
\begin{document}
Name: {{.Name}}
\end{document}`)
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_InvalidTemplate(t *testing.T) {
	_, err := parseTemplate(`{{.InvalidSyntax{{}}`)
	require.Error(t, err)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestReadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`Hello {{.Name}}`), 0o644))

	text, err := ReadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello {{.Name}}", text)

	_, err = ReadTemplate("/nonexistent/template.tex")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestRenderLaTeX_DefaultTemplate(t *testing.T) {
	out, err := RenderLaTeX(sampleDoc(), defaultStyle(t, "modern"), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `\documentclass`))
	assert.Contains(t, out, `\end{document}`)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, `Analyst \& Engineer`)
	assert.Contains(t, out, `\textbf{Babbage \& Co}`)
	assert.Contains(t, out, `Cut costs by 30\%`)
	assert.Contains(t, out, `Go, C\#`)
	assert.Contains(t, out, `\definecolor{primary}{HTML}{0369A1}`)
	assert.Contains(t, out, `\linespread{1.5}`)
	assert.Contains(t, out, `02/2021 -- Present`)
	assert.NotContains(t, out, "<no value>")
	assert.NotContains(t, out, "multicols}{2}", "single column style")
}

func TestRenderLaTeX_TwoColumns(t *testing.T) {
	style := defaultStyle(t, "modern")
	style.Columns = 2

	out, err := RenderLaTeX(sampleDoc(), style, "")
	require.NoError(t, err)
	assert.Contains(t, out, `\begin{multicols}{2}`)
	assert.Contains(t, out, `\end{multicols}`)
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	out, err := RenderLaTeX(sampleDoc(), defaultStyle(t, "modern"), `{{.Name}}|{{.Email}}|{{len .Companies}}`)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace|ada@example.com|2", out)
}

func TestRenderLaTeX_ExecutionError(t *testing.T) {
	_, err := RenderLaTeX(sampleDoc(), defaultStyle(t, "modern"), `{{.Missing.Field}}`)
	require.Error(t, err)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestRenderLaTeX_NilDocument(t *testing.T) {
	_, err := RenderLaTeX(nil, defaultStyle(t, ""), "")
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
}

func TestGroupByCompanyAndRole(t *testing.T) {
	companies := groupByCompanyAndRole(sampleDoc().Experience)
	require.Len(t, companies, 2)

	// The current role sorts first.
	assert.Equal(t, "Analytical Society", companies[0].Company)
	assert.Equal(t, `Babbage \& Co`, companies[1].Company)

	require.Len(t, companies[1].Roles, 1)
	role := companies[1].Roles[0]
	assert.Equal(t, "Engineer", role.Role)
	assert.Equal(t, "03/2017 -- 01/2018, 01/2019 -- 06/2020", role.DateRanges)
	assert.Equal(t, []string{"Built the engine", `Cut costs by 30\%`, "Debugged gears"}, role.Bullets)
}

func TestGroupByCompanyAndRole_Empty(t *testing.T) {
	assert.Empty(t, groupByCompanyAndRole(nil))
}

func TestMergeDateRanges(t *testing.T) {
	tests := []struct {
		name    string
		entries []entryWithMeta
		want    string
	}{
		{name: "none", entries: nil, want: ""},
		{name: "undated", entries: []entryWithMeta{{}}, want: ""},
		{
			name:    "duplicates collapse",
			entries: []entryWithMeta{{StartDate: "2020-01", EndDate: "2021-01"}, {StartDate: "2020-01", EndDate: "2021-01"}},
			want:    "01/2020 -- 01/2021",
		},
		{
			name:    "sorted by start",
			entries: []entryWithMeta{{StartDate: "2022-05", Current: true}, {StartDate: "2018-01", EndDate: "2019-12"}},
			want:    "01/2018 -- 12/2019, 05/2022 -- Present",
		},
		{
			name:    "open start only",
			entries: []entryWithMeta{{StartDate: "2020-03-15"}},
			want:    "03/2020",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeDateRanges(tt.entries))
		})
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "", displayDate(""))
	assert.Equal(t, "07/2023", displayDate("2023-07"))
	assert.Equal(t, "07/2023", displayDate("2023-07-04"))
	assert.Equal(t, "Spring 2020", displayDate("Spring 2020"))
}
