package depot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeServiceNotFound indicates no service or factory resolves for an identifier
	CodeServiceNotFound = "SERVICE_NOT_FOUND"

	// CodeServiceNotCreated indicates a factory failed while creating a service
	CodeServiceNotCreated = "SERVICE_NOT_CREATED"

	// CodeCyclicAlias indicates an alias chain loops back on itself
	CodeCyclicAlias = "CYCLIC_ALIAS"

	// CodeInvalidArgument indicates a malformed configuration payload
	CodeInvalidArgument = "INVALID_ARGUMENT"

	// CodeTypeMismatch indicates a type mismatch during typed retrieval
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrServiceNotFoundSentinel is a sentinel error for service not found (for error checking).
var ErrServiceNotFoundSentinel = errs.NewError(CodeServiceNotFound, "service not found", nil)

// ErrServiceNotCreatedSentinel is a sentinel error for factory failures (for error checking).
var ErrServiceNotCreatedSentinel = errs.NewError(CodeServiceNotCreated, "service not created", nil)

// ErrCyclicAliasSentinel is a sentinel error for alias cycles (for error checking).
var ErrCyclicAliasSentinel = errs.NewError(CodeCyclicAlias, "cyclic alias", nil)

// ErrInvalidArgumentSentinel is a sentinel error for malformed configuration (for error checking).
var ErrInvalidArgumentSentinel = errs.NewError(CodeInvalidArgument, "invalid argument", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrServiceNotFound creates an error for when a service is not found
func ErrServiceNotFound(id string) *errs.Error {
	return errs.NewError(
		CodeServiceNotFound,
		fmt.Sprintf("service '%s' not found", id),
		nil,
	).WithContext("service", id).(*errs.Error)
}

// ErrFactoryNotFound creates an error for an identifier that resolves to no usable factory.
func ErrFactoryNotFound(id string) *errs.Error {
	return errs.NewError(
		CodeServiceNotFound,
		fmt.Sprintf("unable to resolve service '%s' to a factory; are you certain you provided it during configuration?", id),
		nil,
	).WithContext("service", id).(*errs.Error)
}

// ErrCyclicAlias creates an error for an alias mapping that contains a cycle.
// The mapping being resolved is attached for diagnostics.
func ErrCyclicAlias(aliases map[string]string) *errs.Error {
	snapshot := make(map[string]string, len(aliases))
	for alias, target := range aliases {
		snapshot[alias] = target
	}

	return errs.NewError(
		CodeCyclicAlias,
		fmt.Sprintf("cycles are not allowed in aliases: %s", formatAliases(snapshot)),
		nil,
	).WithContext("aliases", snapshot).(*errs.Error)
}

// ErrInvalidArgument creates an error for malformed configuration input.
func ErrInvalidArgument(reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidArgument,
		fmt.Sprintf("invalid argument: %s", reason),
		nil,
	).WithContext("reason", reason).(*errs.Error)
}

// ErrTypeMismatch creates an error for type mismatch during resolution
func ErrTypeMismatch(id string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("service '%s' type mismatch: got %T", id, actual),
		nil,
	).WithContext("service", id).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// CreationError is returned when a factory fails to produce its service.
// It matches ErrServiceNotCreatedSentinel with errors.Is and unwraps to the
// factory's own error.
type CreationError struct {
	base *errs.Error

	// ID is the terminal identifier that was being created.
	ID string

	// Code is the integer code carried by the factory error, or 0.
	Code int

	// Err is the error returned by the factory.
	Err error
}

// ErrServiceNotCreated wraps a factory failure for the given identifier.
func ErrServiceNotCreated(id string, cause error) *CreationError {
	code := ErrorCode(cause)

	reason := "<nil>"
	if cause != nil {
		reason = cause.Error()
	}

	return &CreationError{
		base: errs.NewError(
			CodeServiceNotCreated,
			fmt.Sprintf("service with id '%s' could not be created. Reason: %s", id, reason),
			cause,
		).WithContext("service", id).
			WithContext("code", code).(*errs.Error),
		ID:   id,
		Code: code,
		Err:  cause,
	}
}

// Error implements error.
func (e *CreationError) Error() string {
	return e.base.Error()
}

// Is matches the creation-failed code.
func (e *CreationError) Is(target error) bool {
	return errors.Is(e.base, target)
}

// Unwrap returns the factory error.
func (e *CreationError) Unwrap() error {
	return e.Err
}

// ErrorCode extracts an integer code from err. Errors exposing Code() int
// report it directly, errors exposing Code() string are parsed, anything
// else (including unparsable strings) yields 0. Only whole decimal strings
// parse: a leading-digit code such as "12abc" yields 0, not 12.
func ErrorCode(err error) int {
	var intCoder interface{ Code() int }
	if errors.As(err, &intCoder) {
		return intCoder.Code()
	}

	var strCoder interface{ Code() string }
	if errors.As(err, &strCoder) {
		if n, convErr := strconv.Atoi(strCoder.Code()); convErr == nil {
			return n
		}
	}

	return 0
}

// IsContainerError reports whether err belongs to the container's own error
// taxonomy. Such errors pass through the creation pipeline unwrapped.
func IsContainerError(err error) bool {
	return errors.Is(err, ErrServiceNotFoundSentinel) ||
		errors.Is(err, ErrServiceNotCreatedSentinel) ||
		errors.Is(err, ErrCyclicAliasSentinel) ||
		errors.Is(err, ErrInvalidArgumentSentinel)
}
