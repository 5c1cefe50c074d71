// Package validation turns struct tag validation into the field → message map the
// admin forms render inline.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator; field names resolve to their json names.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
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
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			if f.Kind() != reflect.String {
				return !f.IsZero()
			}
			return strings.TrimSpace(f.String()) != ""
		})
		validate = v
	})
	return validate
}

// Errors maps a json field path ("department", "author.name") to a message.
type Errors map[string]string

// Struct validates s and returns nil when it is valid.
func Struct(s any) Errors {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"_": err.Error()}
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = Message(fe)
	}
	return out
}

// Var validates a single value against tag, returning the message or "".
func Var(field any, tag string) string {
	err := Validator().Var(field, tag)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return Message(verrs[0])
	}
	return err.Error()
}

// Message renders one failed rule as user facing text.
func Message(fe validator.FieldError) string {
	label := Humanize(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "url", "http_url":
		return label + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// Humanize turns "experienceLevel" into "Experience level".
func Humanize(field string) string {
	if field == "" {
		return "Field"
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case r == '_' || r == '-':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
