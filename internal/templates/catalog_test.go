package templates

import (
	"testing"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	ids := make([]string, 0, c.Len())
	for _, tmpl := range c.List() {
		ids = append(ids, tmpl.ID)
		assert.NotEmpty(t, tmpl.Name)
		assert.NotEmpty(t, tmpl.Description)
		assert.True(t, tmpl.SupportsColumns(1), "%s must support one column", tmpl.ID)
	}
	assert.Equal(t, []string{"minimalist", "professional", "creative", "modern", "academic", "technical"}, ids)
	assert.Equal(t, "minimalist", c.Default().ID)
}

func TestGet(t *testing.T) {
	c := MustBuiltin()

	modern, ok := c.Get("modern")
	require.True(t, ok)
	assert.True(t, modern.SupportsColumns(2))
	assert.Equal(t, "/templates/modern.png", modern.ThumbnailRef)

	minimalist, ok := c.Get("minimalist")
	require.True(t, ok)
	assert.False(t, minimalist.SupportsColumns(2))

	_, ok = c.Get("baroque")
	assert.False(t, ok)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := MustBuiltin()
	modern, _ := c.Get("modern")
	modern.Columns[0] = 9

	again, _ := c.Get("modern")
	assert.Equal(t, []int{1, 2}, again.Columns)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.TemplateDescriptor
		wantMsg string
	}{
		{name: "empty", entries: nil, wantMsg: "catalog is empty"},
		{name: "missing id", entries: []types.TemplateDescriptor{{Columns: []int{1}}}, wantMsg: "has no id"},
		{
			name:    "duplicate id",
			entries: []types.TemplateDescriptor{{ID: "a", Columns: []int{1}}, {ID: "a", Columns: []int{1}}},
			wantMsg: "duplicate template id",
		},
		{name: "no columns", entries: []types.TemplateDescriptor{{ID: "a"}}, wantMsg: "declares no columns"},
		{name: "three columns", entries: []types.TemplateDescriptor{{ID: "a", Columns: []int{3}}}, wantMsg: "unsupported column count 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			require.Error(t, err)
			var catErr *CatalogError
			assert.ErrorAs(t, err, &catErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("- id: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}
