package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidDate indicates that a transaction date in the future was supplied
// to rate resolution.
var ErrInvalidDate = errors.New("transaction date cannot be in the future")

// ErrConversionUnavailable indicates that no qualifying exchange rate exists
// within the lookback window. This is a business-rule rejection, not a fault
// of the rates provider.
var ErrConversionUnavailable = errors.New("currency conversion unavailable")

// ErrExternalService indicates that a call to an external dependency failed at
// the transport level. Distinct from ErrConversionUnavailable: callers may
// retry this one out-of-band.
var ErrExternalService = errors.New("external service error")

// ErrUnauthorized indicates a missing, invalid or expired access token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates a valid token that lacks the required scope.
var ErrForbidden = errors.New("forbidden")
