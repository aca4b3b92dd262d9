// Package models holds the client-side data records exchanged with the
// marketplace backend. All of them are cached copies: the backend is the
// source of truth and every auth or purchase response replaces the cached
// value wholesale, never field by field.
package models

import "slices"

// User is the identity record adopted by the session while a credential is
// held. PurchasedComponents lists the component ids this user has paid for.
type User struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Mobile              string   `json:"mobile"`
	PurchasedComponents []string `json:"purchasedComponents"`
}

// Owns reports whether the user has purchased the given component.
func (u *User) Owns(componentID string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.PurchasedComponents, componentID)
}
