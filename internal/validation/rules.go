// Package validation provides per-field validation rules and the touched/error state
// machine shared by every input of the resume wizard.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FormatEmail is the validator tag for the loose e-mail shape the wizard accepts.
const FormatEmail = "resume_email"

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var (
	validatorOnce   sync.Once
	sharedValidator *validator.Validate
)

// Validator returns the shared validator instance with the wizard's custom tags registered.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation(FormatEmail, func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("failed to register %s validation: %v", FormatEmail, err))
		}
		sharedValidator = v
	})
	return sharedValidator
}

// Rules configures the checks applied to a single field value.
type Rules struct {
	Required bool
	// Format is a validator tag such as FormatEmail, "url" or "e164".
	Format    string
	MinLength int
	MaxLength int
	// Custom runs last. A false result with an empty message reports "<label> is invalid".
	Custom func(value string) (bool, string)
}

// Result is the outcome of evaluating a field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

var valid = Result{Valid: true}

func invalid(msg string) Result {
	return Result{Valid: false, Message: msg}
}

// Check evaluates value against rules. Rules run in order and the first failure wins:
// required, format, length, custom. Blank optional values pass without further checks.
func Check(label, value string, rules Rules) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if rules.Required {
			return invalid(label + " is required")
		}
		return valid
	}

	v := Validator()
	if rules.Format != "" {
		if err := v.Var(trimmed, rules.Format); err != nil {
			return invalid(label + " is invalid")
		}
	}

	if rules.MinLength > 0 {
		if err := v.Var(value, fmt.Sprintf("min=%d", rules.MinLength)); err != nil {
			return invalid(fmt.Sprintf("%s must be at least %d characters", label, rules.MinLength))
		}
	}
	if rules.MaxLength > 0 {
		if err := v.Var(value, fmt.Sprintf("max=%d", rules.MaxLength)); err != nil {
			return invalid(fmt.Sprintf("%s must be at most %d characters", label, rules.MaxLength))
		}
	}

	if rules.Custom != nil {
		if ok, msg := rules.Custom(value); !ok {
			if msg == "" {
				msg = label + " is invalid"
			}
			return invalid(msg)
		}
	}

	return valid
}
