package api

import (
	"context"

	"github.com/example/uikart/internal/client/models"
)

// Client is the backend contract used by the session, catalog, and purchase
// layers. Implementations must treat the token as opaque and must not retain
// references to the returned records.
type Client interface {
	// Login exchanges credentials for a bearer token and user record.
	// Success requires both to be present in the response.
	Login(ctx context.Context, email, password string) (string, *models.User, error)

	// Signup registers a new account; the response contract matches Login.
	Signup(ctx context.Context, name, email, mobile, password string) (string, *models.User, error)

	// Verify checks a stored token. Success iff the backend returns a user.
	// A network failure is an ordinary error, indistinguishable in effect
	// from "no user returned".
	Verify(ctx context.Context, token string) (*models.User, error)

	// ListComponents fetches the full catalog visible to the token.
	ListComponents(ctx context.Context, token string) ([]models.Component, error)

	// Seed asks the backend to reseed its component set (dev only).
	Seed(ctx context.Context, token string) (string, error)

	// CreateOrder opens a payment order for the given minor-unit amount.
	// A response without an order id is a failure.
	CreateOrder(ctx context.Context, token string, amountMinor int64, currency string) (*models.Order, error)

	// VerifyPayment submits proof-of-payment for a component. Success iff
	// the backend confirms it and returns an updated user record.
	VerifyPayment(ctx context.Context, token string, proof models.PaymentProof, componentID string) (*models.User, error)
}
