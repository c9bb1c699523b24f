package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Struct runs the validate tags of v and reports failures keyed by JSON path.
// A nil result means v passed.
func Struct(v any) types.FieldErrors {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return types.FieldErrors{"": err.Error()}
	}
	out := types.FieldErrors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), tagMessage(fe))
	}
	return out
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "hexcolor":
		return fe.Field() + " must be a hex color"
	default:
		return fe.Field() + " is invalid"
	}
}
