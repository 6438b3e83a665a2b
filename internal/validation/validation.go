// Package validation checks form input with go-playground/validator.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// simpleEmail accepts local@domain.tld with no whitespace and a single @.
var simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return simpleEmail.MatchString(s)
}

// Validator validates form structs.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the "simpleemail" tag registered. Field names
// in errors come from the form tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// FieldError names a failing field and the rule it broke.
type FieldError struct {
	Field string
	Tag   string
}

// All validates s and returns every failing field and rule, or nil.
func (v *Validator) All(s any) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// HasTag reports whether any error broke the given rule.
func HasTag(errs []FieldError, tag string) bool {
	for _, e := range errs {
		if e.Tag == tag {
			return true
		}
	}
	return false
}
