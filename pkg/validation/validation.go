// Package validation wraps go-playground/validator with the wall-clock and
// calendar-date tags used by request payloads.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"slotlink/pkg/civil"
	apperrors "slotlink/pkg/errors"

	"github.com/go-playground/validator/v10"
)

const (
	TagClock   = "clock"
	TagISODate = "isodate"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"-"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation(TagClock, validateClock); err != nil {
		return nil, fmt.Errorf("register %q validator: %w", TagClock, err)
	}
	if err := v.RegisterValidation(TagISODate, validateISODate); err != nil {
		return nil, fmt.Errorf("register %q validator: %w", TagISODate, err)
	}
	return &Validator{validate: v}, nil
}

// MustNew panics if a custom tag cannot be registered, which only happens on
// programmer error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := civil.ToMinutes(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := civil.ParseDate(fl.Field().String())
	return err == nil
}

// Struct validates s and returns ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translateValidationErrors(validationErrs)
	}
	return err
}

// Check validates s and maps failures onto the API error taxonomy: a missing
// field is INVALID_REQUEST, a malformed date or time is FORMAT_ERROR.
func (v *Validator) Check(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		return apperrors.Internal("Failed to validate request", err)
	}
	return ToAppError(errs)
}

func ToAppError(errs ValidationErrors) *apperrors.AppError {
	details := make(map[string]any, len(errs))
	format := false
	missing := false
	for _, e := range errs {
		details[e.Field] = e.Message
		switch e.Tag {
		case "required":
			missing = true
		case TagClock, TagISODate:
			format = true
		}
	}

	if format && !missing {
		return apperrors.Format("Invalid date or time format", errs).WithDetails(details)
	}
	return apperrors.InvalidRequest("Invalid request", details)
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case TagClock:
			message = fmt.Sprintf("%s must be a time in HH:MM format", err.Field())
		case TagISODate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		}

		out = append(out, ValidationError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Message: message,
		})
	}

	return out
}
