package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport-level failures (connection refused,
	// DNS, canceled context).
	ErrUnavailable = errors.New("server unavailable")

	// ErrOrderNotCreated marks an order response that carried no order id.
	ErrOrderNotCreated = errors.New("order was not created")

	// ErrPaymentNotVerified marks a verification response that did not
	// confirm the payment or carried no user record.
	ErrPaymentNotVerified = errors.New("payment not verified")
)

// APIError is a backend rejection. Message carries the body's "message"
// field when the backend supplied one; callers surface it to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// UserMessage extracts the backend-supplied message from err, falling back
// to the given default when err carries none.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
