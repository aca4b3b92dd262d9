package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/uikart/internal/client/purchase"
)

// Buy runs the three-phase purchase flow for the given component id.
// Verification failures are announced through the notice channel by the
// coordinator; here we only report the local preconditions and the outcome.
func (a *App) Buy(ctx context.Context, id string) error {
	comp, ok := a.catalog.Get(id)
	if !ok {
		fmt.Fprintf(a.out, "No component with id %q. Try 'list'.\n", id)
		return nil
	}

	err := a.buyer.Buy(ctx, comp)
	switch {
	case err == nil:
	case errors.Is(err, purchase.ErrFreeComponent):
		fmt.Fprintf(a.out, "%s is free — use: show %s\n", comp.Name, comp.ID)
		return err
	case errors.Is(err, purchase.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please login first.")
		return err
	case errors.Is(err, purchase.ErrPurchaseInProgress):
		fmt.Fprintf(a.out, "A purchase of %s is already in progress.\n", comp.Name)
		return err
	default:
		// The coordinator already published a notice with the details.
		return err
	}

	if a.session.User().Owns(comp.ID) {
		fmt.Fprintf(a.out, "Purchased %s. Run: show %s\n", comp.Name, comp.ID)
	} else {
		fmt.Fprintln(a.out, "Checkout dismissed.")
	}
	return nil
}
