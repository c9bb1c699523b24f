package resume

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
)

func messyDoc() types.ResumeDocument {
	return types.ResumeDocument{
		ID:    " doc-1 ",
		Title: "  SWE Resume\t",
		PersonalInfo: types.PersonalInfo{
			FirstName: " Ada",
			LastName:  "Lovelace ",
			Email:     " ada@example.com ",
			Summary:   "  Mathematician.  ",
		},
		Experience: []types.Experience{
			{
				ID:           "e1",
				Company:      " Analytical Engines ",
				StartDate:    "2022-07-01",
				EndDate:      "2024-01-01",
				Current:      true,
				Achievements: []string{" Wrote the first program ", "", "   "},
			},
			{
				ID:        "e2",
				Company:   "Difference Co",
				StartDate: "2020-01-01",
				EndDate:   " 2022-06-01 ",
			},
		},
		Skills: []types.Skill{
			{Category: " Languages ", Skills: []string{"Go", " Go", "go", "", "SQL", "Go "}},
		},
		Projects: []types.Project{
			{ID: "p1", Name: "Engine", Current: true, EndDate: "2020-01", Technologies: []string{"brass", " ", "steam"}},
		},
	}
}

func TestNormalize(t *testing.T) {
	out := Normalize(messyDoc())

	assert.Equal(t, "doc-1", out.ID)
	assert.Equal(t, "SWE Resume", out.Title)
	assert.Equal(t, "Ada", out.PersonalInfo.FirstName)
	assert.Equal(t, "Mathematician.", out.PersonalInfo.Summary)

	assert.Empty(t, out.Experience[0].EndDate)
	assert.Equal(t, []string{"Wrote the first program"}, out.Experience[0].Achievements)
	assert.Equal(t, "2022-06-01", out.Experience[1].EndDate)

	assert.Equal(t, "Languages", out.Skills[0].Category)
	assert.Equal(t, []string{"Go", "go", "SQL"}, out.Skills[0].Skills)

	assert.Empty(t, out.Projects[0].EndDate)
	assert.Equal(t, []string{"brass", "steam"}, out.Projects[0].Technologies)
}

func TestNormalize_Idempotent(t *testing.T) {
	docs := []types.ResumeDocument{
		{},
		messyDoc(),
		validDoc(),
	}
	for _, d := range docs {
		once := Normalize(d)
		twice := Normalize(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Normalize is not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestNormalize_PreservesOrderAndInput(t *testing.T) {
	in := messyDoc()
	snapshot := Clone(in)

	out := Normalize(in)

	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Errorf("Normalize mutated its input (-before +after):\n%s", diff)
	}
	assert.Equal(t, "e1", out.Experience[0].ID)
	assert.Equal(t, "e2", out.Experience[1].ID)
}

func TestNormalize_KeepsNilSlices(t *testing.T) {
	out := Normalize(types.ResumeDocument{Experience: []types.Experience{{ID: "e1"}}})
	assert.Nil(t, out.Experience[0].Achievements)
	assert.Nil(t, out.Projects)
}
