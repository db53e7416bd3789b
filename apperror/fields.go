package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// FieldErrorKind identifies the rule a single field failed.
type FieldErrorKind string

const (
	KindRequired            FieldErrorKind = "required"
	KindInvalidFormat       FieldErrorKind = "invalid_format"
	KindInvalidChoice       FieldErrorKind = "invalid_choice"
	KindTooShort            FieldErrorKind = "too_short"
	KindDuplicate           FieldErrorKind = "duplicate"
	KindDuplicateAttendance FieldErrorKind = "duplicate_attendance"
)

type FieldError struct {
	Field   string         `json:"field"`
	Kind    FieldErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// FieldErrors is the field-keyed validation error list returned to the
// caller for display. It is never fatal; handlers render it and move on.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// ByField groups messages per field, the shape the form layer displays.
func (fe FieldErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(fe))
	for _, e := range fe {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

func AsFieldErrors(err error) (FieldErrors, bool) {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs, true
	}
	return nil, false
}
