// Package cli provides the interactive uikart command-line client.
//
// It wires configuration, the local credential store, the backend gateway,
// and an interactive REPL over the session/catalog/purchase core. Typical
// flow: restore the previous session from the local store, then execute user
// commands against the marketplace.
//
// Key features:
//   - Login / Signup / Logout
//   - List the component catalog, show a component's source
//   - Buy a gated component through the terminal checkout
//   - Refresh the catalog, reseed the dev backend
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
