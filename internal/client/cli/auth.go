package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/uikart/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errMissingFields rejects a signup attempt before any backend call is made.
var errMissingFields = errors.New("all fields are required")

// Login prompts the user for an email and password and tries to
// authenticate. The password bytes are wiped before returning. Failures are
// surfaced through the transient notice channel by the session; the error is
// returned for callers that care.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.session.User().Name)
	return nil
}

// Signup prompts for the four registration fields and creates an account.
// The signup is never attempted unless all four fields are present.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	mobile, err := getSimpleText(a.reader, "Enter mobile", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if name == "" || email == "" || mobile == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "All fields are required.")
		return errMissingFields
	}

	if err := a.session.Signup(ctx, name, email, mobile, string(password)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.session.User().Name)
	return nil
}

// Logout clears the stored credential and the in-memory session. It never
// fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
