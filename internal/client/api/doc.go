// Package api contains the client-side gateway to the marketplace backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     auth (Login/Signup/Verify), catalog listing, the dev seed action, and
//     the two payment endpoints (CreateOrder/VerifyPayment).
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that builds
//     requests against a configured base URL, attaches the bearer credential
//     where the contract requires it, and maps unexpected response shapes to
//     *APIError values carrying the backend-supplied message.
//
// # Error Handling
//
// Transport failures are wrapped with ErrUnavailable; rejected requests are
// reported as *APIError. Callers match both with errors.Is/errors.As. The
// gateway never panics on network failure: every failure resolves to an
// ordinary error return.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context; there is no client-enforced timeout, so cancellation and
// deadlines are entirely the caller's responsibility.
package api
