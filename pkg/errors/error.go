package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// InvalidInput is returned when a price, quantity, order type or pair is rejected
	// before any state is touched.
	InvalidInput ErrorCode = "invalid_input"
	// NotFound is returned for unknown order ids or pairs.
	NotFound ErrorCode = "not_found"
	// Unauthorized is returned when the caller does not own the order or is not an admin.
	Unauthorized ErrorCode = "unauthorized"
	// InvalidTransition is returned when an order status change breaks the lifecycle table.
	InvalidTransition ErrorCode = "invalid_transition"
	// InvalidFill is returned when a filled quantity exceeds the order quantity or decreases.
	InvalidFill ErrorCode = "invalid_fill"
	// InvalidSettlement is returned when a settlement record pairs incompatible orders.
	InvalidSettlement ErrorCode = "invalid_settlement"
	// TransferFailed is returned when a ledger leg cannot complete.
	TransferFailed ErrorCode = "transfer_failed"
	// AlreadyProcessed marks a settlement record that was settled before. It is never surfaced.
	AlreadyProcessed ErrorCode = "already_processed"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// Unwrap exposes every detail to errors.Is / errors.As.
func (b *BaseError) Unwrap() []error {
	errs := make([]error, 0, len(b.details))
	for _, d := range b.details {
		errs = append(errs, d)
	}
	return errs
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}
