package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation             Kind = "VALIDATION_ERROR"
	KindInvalidAmount          Kind = "INVALID_AMOUNT"
	KindInsufficientPoints     Kind = "INSUFFICIENT_POINTS"
	KindNotFound               Kind = "NOT_FOUND"
	KindConcurrentModification Kind = "CONCURRENT_MODIFICATION"
	KindAlreadyProcessed       Kind = "ALREADY_PROCESSED"
	KindDuplicateReferral      Kind = "DUPLICATE_REFERRAL"
	KindGateway                Kind = "GATEWAY_ERROR"
)

// Error is the typed failure returned by every core operation.
// Anything that is not an *Error is an unexpected (storage) failure.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may resubmit the same request.
func (e *Error) Retryable() bool {
	return e.Kind == KindConcurrentModification
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Field is shorthand for a validation error on a single field.
func Field(field, problem string) *Error {
	return Validation(problem, map[string]string{field: problem})
}

func InvalidAmount(message string) *Error {
	return &Error{Kind: KindInvalidAmount, Message: message, Fields: map[string]string{"points": message}}
}

func InsufficientPoints(balance, requested int64) *Error {
	return &Error{
		Kind:    KindInsufficientPoints,
		Message: fmt.Sprintf("balance %d is lower than requested %d points", balance, requested),
	}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func ConcurrentModification(entity string) *Error {
	return &Error{Kind: KindConcurrentModification, Message: entity + " was modified concurrently, reload and retry"}
}

func AlreadyProcessed(message string) *Error {
	return &Error{Kind: KindAlreadyProcessed, Message: message}
}

func DuplicateReferral(referrer, referee string) *Error {
	return &Error{
		Kind:    KindDuplicateReferral,
		Message: fmt.Sprintf("referral from %s to %s already exists", referrer, referee),
	}
}

func Gateway(message string, err error) *Error {
	return &Error{Kind: KindGateway, Message: message, Err: err}
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// As returns the *Error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
