package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmptyTextMessage is reported whenever a comment's text is missing or blank
const EmptyTextMessage = "Comment text cannot be empty."

// InvalidTypeMessage is reported when a field holds a JSON value of the wrong type
const InvalidTypeMessage = "Invalid type."

// Errors maps JSON field names to a human readable message
type Errors map[string]string

// Error implements error with a stable, field-sorted summary
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks request shapes against their `validate` tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the comment rules registered
func NewValidator() *Validator {
	v := validator.New()

	// Report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on empty tags or nil funcs
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("url_or_empty", urlOrEmpty)

	return &Validator{validate: v}
}

// Struct validates s and returns Errors, or nil when s is valid
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		if fe.Field() == "text" {
			return EmptyTextMessage
		}
		return "This field may not be blank."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "url_or_empty":
		return "Enter a valid URL."
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func urlOrEmpty(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
