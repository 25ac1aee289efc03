package validation

import (
	"errors"
	"fmt"
)

// Code identifies a validation rule.
type Code string

const (
	CodeInvalidTimeFormat Code = "invalid_time_format"
	CodeMissingDate       Code = "missing_date"
	CodeInvalidDateFormat Code = "invalid_date_format"
	CodeMissingWeekdays   Code = "missing_weekdays"
	CodeInvalidWeekday    Code = "invalid_weekday"
	CodeDuplicateWeekday  Code = "duplicate_weekday"
	CodeUnknownType       Code = "unknown_type"
)

// Sentinels for errors.Is matching. Returned errors are *ValidationError
// values carrying the offending field and a message.
var (
	ErrInvalidTimeFormat = &ValidationError{Code: CodeInvalidTimeFormat}
	ErrMissingDate       = &ValidationError{Code: CodeMissingDate}
	ErrInvalidDateFormat = &ValidationError{Code: CodeInvalidDateFormat}
	ErrMissingWeekdays   = &ValidationError{Code: CodeMissingWeekdays}
	ErrInvalidWeekday    = &ValidationError{Code: CodeInvalidWeekday}
	ErrDuplicateWeekday  = &ValidationError{Code: CodeDuplicateWeekday}
	ErrUnknownType       = &ValidationError{Code: CodeUnknownType}
)

// ValidationError describes the first rule an alarm specification violated.
type ValidationError struct {
	Code    Code
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is matches any ValidationError with the same code.
func (e *ValidationError) Is(target error) bool {
	var ve *ValidationError
	if !errors.As(target, &ve) {
		return false
	}
	return ve.Code == e.Code
}

// Hint implements the CLI error formatter's hint hook.
func (e *ValidationError) Hint() string {
	switch e.Code {
	case CodeInvalidTimeFormat:
		return "Use 24-hour HH:MM, for example 07:30"
	case CodeInvalidDateFormat, CodeMissingDate:
		return "Use YYYY-MM-DD, for example 2026-01-15"
	case CodeMissingWeekdays, CodeInvalidWeekday, CodeDuplicateWeekday:
		return "Pass weekdays as names or numbers 0-6 (0=Sunday), e.g. mon,wed,fri"
	default:
		return ""
	}
}

func newError(code Code, field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
