// Package validation checks request payloads before they reach storage.
// Schemas are plain structs tagged for go-playground/validator; every
// failure is reported in a single *Error carrying all violations.
package validation

import (
	"errors"
	"fmt"
	"html"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Error aggregates every violation found in one payload.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return strings.Join(e.Violations, ", ")
}

// Errorf builds a single-violation *Error.
func Errorf(format string, args ...any) *Error {
	return &Error{Violations: []string{fmt.Sprintf(format, args...)}}
}

var (
	validate = newValidator()
	strip    = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	v.RegisterValidation("nohtml", func(fl validator.FieldLevel) bool {
		return !ContainsHTML(fl.Field().String())
	})
	v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return v
}

// StripHTML removes every tag from s and returns plain text. Entities are
// decoded so that ordinary characters such as & survive unchanged. The
// transform is applied until it reaches a fixed point, so
// StripHTML(StripHTML(s)) == StripHTML(s).
func StripHTML(s string) string {
	for {
		next := html.UnescapeString(strip.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
}

// ContainsHTML reports whether stripping markup would change s.
func ContainsHTML(s string) bool {
	return StripHTML(s) != s
}

// Struct validates v against its tags. A nil return means v is valid;
// otherwise the error is an *Error listing every violation.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "nohtml":
		return fmt.Sprintf("%s must not include HTML!", field)
	case "finite":
		return fmt.Sprintf("%s must be a number", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "alphanum":
		return fmt.Sprintf("%s must only contain alpha-numeric characters", field)
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte", "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
}

// Merge combines violations of several checks into one error. nil inputs
// are skipped; the result is nil when nothing failed.
func Merge(errs ...error) error {
	out := &Error{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *Error
		if errors.As(err, &verr) {
			out.Violations = append(out.Violations, verr.Violations...)
			continue
		}
		return err
	}
	if len(out.Violations) == 0 {
		return nil
	}
	return out
}
