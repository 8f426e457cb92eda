package utils

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrInstrumentNotFound   = errors.New("payment instrument not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrTransactionNotFound  = errors.New("transaction not found")

	// Returned while another request holds the same idempotency key in PROCESSING.
	ErrDuplicateInFlight = errors.New("request with this idempotency key is already in progress")
	ErrDuplicateName     = errors.New("a record with this name already exists")

	ErrDatabaseError      = errors.New("database error")
	ErrGatewayUnavailable = errors.New("settlement gateway unavailable")
)

// ValidationError is a bad-precondition rejection: surfaced before any gateway
// call or mutation happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
