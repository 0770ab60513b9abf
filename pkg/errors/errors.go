package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrInvalidState ErrorCode = "INVALID_STATE"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Selection errors
	ErrSelectionShape ErrorCode = "SELECTION_SHAPE"
	ErrSelectionRule  ErrorCode = "SELECTION_RULE"

	// Install errors
	ErrPrerequisites ErrorCode = "PREREQUISITES_NOT_MET"
	ErrCancelled     ErrorCode = "CANCELLED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// Detail keys holding the item lists of ConfigInvalid and SelectionRule
const (
	DetailProblems   = "problems"
	DetailViolations = "violations"
)

// ModwizError represents a structured error with code and details
type ModwizError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModwizError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModwizError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModwizError) Is(target error) bool {
	var targetErr *ModwizError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModwizError with the given code and message
func New(code ErrorCode, message string) *ModwizError {
	return &ModwizError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModwizError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModwizError {
	return &ModwizError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModwizError.
// Callers returning the result as a plain error must check err first:
// a nil *ModwizError stored in an error interface is not nil.
func Wrap(err error, code ErrorCode, message string) *ModwizError {
	if err == nil {
		return nil
	}
	return &ModwizError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModwizError {
	if err == nil {
		return nil
	}
	return &ModwizError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModwizError) WithDetail(key string, value interface{}) *ModwizError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ModwizError) WithDetails(details map[string]interface{}) *ModwizError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ConfigInvalid reports every structural problem found in one pass as a
// single CONFIG_INVALID error, listing them under DetailProblems. It
// returns nil when there are no problems.
func ConfigInvalid(subject string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return Newf(ErrConfigInvalid, "%s: %s", subject, strings.Join(problems, "; ")).
		WithDetail(DetailProblems, problems)
}

// SelectionShape reports a selection whose dimensions do not match the
// step it is applied to. An empty step means no step is shown yet.
func SelectionShape(step string, format string, args ...interface{}) *ModwizError {
	err := Newf(ErrSelectionShape, format, args...)
	if step != "" {
		err.WithDetail("step", step)
	}
	return err
}

// SelectionRule reports the group rule violations of a step's selection,
// listed under DetailViolations. It returns nil when there are none.
func SelectionRule(step string, violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return Newf(ErrSelectionRule, "selection for step %q breaks group rules: %s", step, strings.Join(violations, "; ")).
		WithDetail("step", step).
		WithDetail(DetailViolations, violations)
}

// Items returns the list stored under key, such as DetailProblems, or nil
func Items(err error, key string) []string {
	items, _ := GetErrorDetails(err)[key].([]string)
	return items
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modwizErr *ModwizError
	if errors.As(err, &modwizErr) {
		return modwizErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModwizError
func GetErrorCode(err error) ErrorCode {
	var modwizErr *ModwizError
	if errors.As(err, &modwizErr) {
		return modwizErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModwizError
func GetErrorDetails(err error) map[string]interface{} {
	var modwizErr *ModwizError
	if errors.As(err, &modwizErr) {
		return modwizErr.Details
	}
	return nil
}
