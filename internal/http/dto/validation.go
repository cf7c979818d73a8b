package dto

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) ToMap() map[string]string {
	return map[string]string{e.Field: e.Message}
}

func ToMap(errs []ValidationError) map[string]string {
	result := make(map[string]string)
	for _, e := range errs {
		result[e.Field] = e.Message
	}
	return result
}

func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// json tag names, so they line up with the request body keys.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		// Patch fields treat blank as absent, so only a non-blank value
		// has to be a URL.
		_ = validate.RegisterValidation("url_or_blank", func(fl validator.FieldLevel) bool {
			v := strings.TrimSpace(fl.Field().String())
			return v == "" || validate.Var(v, "url") == nil
		})
		_ = validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return slices.Contains(Genres, fl.Field().String())
		})
		_ = validate.RegisterValidation("us_state", func(fl validator.FieldLevel) bool {
			return slices.Contains(States, fl.Field().String())
		})
	})
	return validate
}

// Validate runs the struct's validate tags and returns one error per
// failing field.
func Validate(s interface{}) []ValidationError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fieldPath(fe), Message: translate(fe)})
	}
	return out
}

// fieldPath drops the struct name from the namespace:
// "QuestionRequest.answer" becomes "answer", "DrinkRequest.recipe[0].name"
// becomes "recipe[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var messageTemplates = map[string]string{
	"required":     "%s is required",
	"notblank":     "%s is required",
	"url":          "%s must be a valid URL",
	"url_or_blank": "%s must be a valid URL",
	"http_url":     "%s must be a valid http(s) URL",
	"genre":        "%s is not a known genre",
	"us_state":     "%s is not a known state",
}

var messageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}

	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Map:
		unit = " items"
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
