package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		value   string
		rules   Rules
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "optional blank passes",
			label:  "Website",
			value:  "",
			rules:  Rules{Format: "url"},
			wantOK: true,
		},
		{
			name:    "required blank fails",
			label:   "First name",
			value:   "   ",
			rules:   Rules{Required: true},
			wantMsg: "First name is required",
		},
		{
			name:   "valid email",
			label:  "Email",
			value:  "ada@example.com",
			rules:  Rules{Required: true, Format: FormatEmail},
			wantOK: true,
		},
		{
			name:    "email without dot in domain",
			label:   "Email",
			value:   "ada@example",
			rules:   Rules{Required: true, Format: FormatEmail},
			wantMsg: "Email is invalid",
		},
		{
			name:    "required wins over format",
			label:   "Email",
			value:   "",
			rules:   Rules{Required: true, Format: FormatEmail},
			wantMsg: "Email is required",
		},
		{
			name:    "too short",
			label:   "Title",
			value:   "ab",
			rules:   Rules{MinLength: 3},
			wantMsg: "Title must be at least 3 characters",
		},
		{
			name:    "too long",
			label:   "Summary",
			value:   "abcdef",
			rules:   Rules{MaxLength: 5},
			wantMsg: "Summary must be at most 5 characters",
		},
		{
			name:   "length counts runes",
			label:  "Name",
			value:  "ééé",
			rules:  Rules{MaxLength: 3},
			wantOK: true,
		},
		{
			name:    "format wins over length",
			label:   "Email",
			value:   "x",
			rules:   Rules{Format: FormatEmail, MinLength: 5},
			wantMsg: "Email is invalid",
		},
		{
			name:  "custom predicate with message",
			label: "Code",
			value: "abc",
			rules: Rules{Custom: func(v string) (bool, string) {
				return v == "xyz", "Code must be xyz"
			}},
			wantMsg: "Code must be xyz",
		},
		{
			name:  "custom predicate default message",
			label: "Code",
			value: "abc",
			rules: Rules{Custom: func(string) (bool, string) {
				return false, ""
			}},
			wantMsg: "Code is invalid",
		},
		{
			name:  "custom runs after length",
			label: "Code",
			value: "a",
			rules: Rules{MinLength: 2, Custom: func(string) (bool, string) {
				return false, "never reached"
			}},
			wantMsg: "Code must be at least 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(tt.label, tt.value, tt.rules)
			assert.Equal(t, tt.wantOK, res.Valid)
			assert.Equal(t, tt.wantMsg, res.Message)
		})
	}
}

func TestValidator_RegistersEmailTag(t *testing.T) {
	v := Validator()
	assert.Same(t, v, Validator())
	assert.NoError(t, v.Var("a@b.co", FormatEmail))
	assert.Error(t, v.Var("not-an-email", FormatEmail))
}

func TestStruct(t *testing.T) {
	type layout struct {
		Style string `json:"style" validate:"required,oneof=boxed plain"`
	}
	type config struct {
		Color  string `json:"color" validate:"required,hexcolor"`
		Layout layout `json:"layout"`
	}

	assert.Nil(t, Struct(config{Color: "#fff", Layout: layout{Style: "boxed"}}))

	errs := Struct(config{Color: "blue", Layout: layout{Style: "fancy"}})
	assert.Equal(t, "color must be a hex color", errs["color"])
	assert.Equal(t, "style must be one of: boxed plain", errs["layout.style"])

	errs = Struct(config{Layout: layout{Style: "plain"}})
	assert.Equal(t, "color is required", errs["color"])
}
