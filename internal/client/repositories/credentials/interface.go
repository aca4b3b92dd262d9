// Package credentials persists the single bearer token that identifies the
// current session to the backend. The store is the write-through target for
// the credential: the in-memory session must never hold a token the store
// does not (except during the verify-pending window at startup).
package credentials

import "context"

// Repository is the durable credential slot. Exactly one token is held at a
// time; Save overwrites, Clear removes.
type Repository interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)

	// Save stores the token, replacing any previous one.
	Save(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
