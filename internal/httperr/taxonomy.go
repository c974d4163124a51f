package httperr

import (
	"errors"
	"fmt"
)

// ===============================
// Error Taxonomy
// ===============================

// ValidationError rejects a malformed block or request before persistence.
type ValidationError struct {
	Code  string
	Field string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Code)
	}
	return e.Code
}

func ErrValidation(code, field string) error {
	return ValidationError{Code: code, Field: field}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// NotFoundError marks an unknown provider or block.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Entity + "_not_found"
}

func ErrNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// ExternalProviderError wraps an auth/network failure reaching the external
// calendar. Never retried automatically; surfaced with the sync diagnostics.
type ExternalProviderError struct {
	Op    string
	Cause error
}

func (e ExternalProviderError) Error() string {
	return fmt.Sprintf("external calendar %s: %v", e.Op, e.Cause)
}

func (e ExternalProviderError) Unwrap() error {
	return e.Cause
}

func ErrExternal(op string, cause error) error {
	return ExternalProviderError{Op: op, Cause: cause}
}

func IsExternal(err error) bool {
	var xe ExternalProviderError
	return errors.As(err, &xe)
}

// BusinessError carries a machine-readable rule violation code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
