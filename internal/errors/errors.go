package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel violation kinds. Every invariant check in the pipeline marks its
// error with exactly one of these so callers can branch on the kind without
// parsing messages.
var (
	ErrUniqueness       = newError(ErrCodeUniqueness, "duplicate id in generated table")
	ErrReferential      = newError(ErrCodeReferential, "foreign key references a missing row")
	ErrRange            = newError(ErrCodeRange, "value outside its allowed domain")
	ErrStatisticalShape = newError(ErrCodeStatisticalShape, "aggregate statistic outside tolerance band")
	ErrValidation       = newError(ErrCodeValidation, "validation error")
	ErrInternal         = newError(ErrCodeInternal, "internal error")
)

const (
	ErrCodeUniqueness       = "uniqueness_violation"
	ErrCodeReferential      = "referential_violation"
	ErrCodeRange            = "range_violation"
	ErrCodeStatisticalShape = "statistical_shape_violation"
	ErrCodeValidation       = "validation_error"
	ErrCodeInternal         = "internal_error"
)

// InternalError represents a domain error with a machine-readable code.
type InternalError struct {
	Code    string
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches wrapped errors by code so sentinel comparison survives wrapping.
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func newError(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsUniqueness checks if an error is a uniqueness violation
func IsUniqueness(err error) bool {
	return errors.Is(err, ErrUniqueness)
}

// IsReferential checks if an error is a referential-integrity violation
func IsReferential(err error) bool {
	return errors.Is(err, ErrReferential)
}

// IsRange checks if an error is a range violation
func IsRange(err error) bool {
	return errors.Is(err, ErrRange)
}

// IsStatisticalShape checks if an error is a statistical-shape violation
func IsStatisticalShape(err error) bool {
	return errors.Is(err, ErrStatisticalShape)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
