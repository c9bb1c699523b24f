package customize

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// ConfigError is returned for a style configuration that is not syntactically valid
// (missing fonts, malformed colors, unknown layout enums). Such configs are not clamped.
type ConfigError struct {
	Errors types.FieldErrors
}

func (e *ConfigError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, path := range e.Errors.Paths() {
		parts = append(parts, fmt.Sprintf("%s: %s", path, e.Errors[path]))
	}
	return "invalid style configuration: " + strings.Join(parts, "; ")
}

// RejectionError reports a value the chosen template cannot honour. Unlike numeric
// bounds these are never coerced.
type RejectionError struct {
	Field      string `json:"field"`
	Value      any    `json:"value"`
	TemplateID string `json:"templateId"`
	Supported  []int  `json:"supported,omitempty"`
	Message    string `json:"message"`
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rejected %s=%v for template %q: %s", e.Field, e.Value, e.TemplateID, e.Message)
}
