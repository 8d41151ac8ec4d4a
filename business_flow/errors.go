// Package businessflow contains the core business logic and use cases for restaurant accounts and the catalog
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Restaurant-related errors
	ErrMissingRegistrationFields = errors.New("name, email, and password are required")
	ErrEmailAlreadyRegistered    = errors.New("email already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrTooManyLoginAttempts      = errors.New("too many login attempts")
	ErrPasswordTooLong           = errors.New("password must be at most 72 bytes")
	ErrRestaurantNotFound        = errors.New("restaurant not found")
	ErrOnlineStatusRequired      = errors.New("online status is required")

	// Payment-related errors
	ErrRestaurantIDRequired = errors.New("restaurant id is required")
	ErrInvalidWebhookSecret = errors.New("invalid webhook secret")

	// Catalog-related errors
	ErrMissingProductFields = errors.New("missing required fields")
	ErrIncompleteOrderData  = errors.New("incomplete order data")
)

// ErrorKind classifies failures for transport mapping
type ErrorKind int

const (
	KindPersistence ErrorKind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindNotFound
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "persistence"
	}
}

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrMissingRegistrationFields, KindValidation},
	{ErrPasswordTooLong, KindValidation},
	{ErrOnlineStatusRequired, KindValidation},
	{ErrRestaurantIDRequired, KindValidation},
	{ErrMissingProductFields, KindValidation},
	{ErrIncompleteOrderData, KindValidation},
	{ErrEmailAlreadyRegistered, KindConflict},
	{ErrInvalidCredentials, KindAuthentication},
	{ErrInvalidWebhookSecret, KindAuthentication},
	{ErrRestaurantNotFound, KindNotFound},
	{ErrTooManyLoginAttempts, KindRateLimited},
}

// KindOf reports the kind of err. Anything unclassified is a persistence failure.
func KindOf(err error) ErrorKind {
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return KindPersistence
}

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsMissingRegistrationFields(err error) bool {
	return errors.Is(err, ErrMissingRegistrationFields)
}

func IsEmailAlreadyRegistered(err error) bool {
	return errors.Is(err, ErrEmailAlreadyRegistered)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsTooManyLoginAttempts(err error) bool {
	return errors.Is(err, ErrTooManyLoginAttempts)
}

func IsPasswordTooLong(err error) bool {
	return errors.Is(err, ErrPasswordTooLong)
}

func IsRestaurantNotFound(err error) bool {
	return errors.Is(err, ErrRestaurantNotFound)
}

func IsOnlineStatusRequired(err error) bool {
	return errors.Is(err, ErrOnlineStatusRequired)
}

func IsRestaurantIDRequired(err error) bool {
	return errors.Is(err, ErrRestaurantIDRequired)
}

func IsInvalidWebhookSecret(err error) bool {
	return errors.Is(err, ErrInvalidWebhookSecret)
}

func IsMissingProductFields(err error) bool {
	return errors.Is(err, ErrMissingProductFields)
}

func IsIncompleteOrderData(err error) bool {
	return errors.Is(err, ErrIncompleteOrderData)
}
