// Package purchase drives the three-phase payment handshake: create an order
// on the backend, collect payment through an external checkout surface, then
// submit the proof for verification and adopt the updated user record.
package purchase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/catalog"
	"github.com/example/uikart/internal/client/models"
	"github.com/example/uikart/internal/client/notify"
	"github.com/example/uikart/internal/client/session"
	"github.com/example/uikart/internal/logging"
)

var (
	// ErrFreeComponent rejects purchase attempts on components with no price.
	ErrFreeComponent = errors.New("component is free")

	// ErrNotAuthenticated rejects purchases from anonymous sessions.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPurchaseInProgress rejects a second attempt on a component while
	// one is already active for it.
	ErrPurchaseInProgress = errors.New("purchase already in progress")
)

const verifyFailedNotice = "Payment verification failed."

// minorUnitsPerMajor converts catalog prices to the backend's minor-unit
// representation (e.g. rupees to paise).
const minorUnitsPerMajor = 100

type Coordinator struct {
	api     api.Client
	session *session.Session
	catalog *catalog.Catalog
	notices *notify.Channel
	opener  Opener
	log     logging.Logger

	storeName string
	currency  string

	mu     sync.Mutex
	active map[string]struct{} // component ids with a live attempt
}

func NewCoordinator(
	apiClient api.Client,
	sess *session.Session,
	cat *catalog.Catalog,
	notices *notify.Channel,
	opener Opener,
	log logging.Logger,
	storeName, currency string,
) *Coordinator {
	return &Coordinator{
		api:       apiClient,
		session:   sess,
		catalog:   cat,
		notices:   notices,
		opener:    opener,
		log:       log,
		storeName: storeName,
		currency:  currency,
		active:    map[string]struct{}{},
	}
}

// Buy runs one purchase attempt for comp.
//
// Phase 1 creates the order; a failure aborts before the checkout ever
// opens. Phase 2 hands off to the external checkout and waits for its
// completion callback; dismissal ends the attempt with no state change and
// no error. Phase 3 verifies the proof: success replaces the session's user
// wholesale and refreshes the catalog, anything else publishes a notice and
// leaves the user untouched — the backend may have captured money without
// granting access, and that mismatch is surfaced, never silently retried.
func (c *Coordinator) Buy(ctx context.Context, comp models.Component) error {
	if comp.Free() {
		return ErrFreeComponent
	}
	token := c.session.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	if !c.begin(comp.ID) {
		return ErrPurchaseInProgress
	}
	defer c.end(comp.ID)

	order, err := c.api.CreateOrder(ctx, token, comp.Price*minorUnitsPerMajor, c.currency)
	if err != nil {
		c.notices.Publish(api.UserMessage(err, "Could not create order."))
		return err
	}

	proof, err := c.collectPayment(ctx, order, comp)
	if err != nil {
		return err
	}
	if proof == nil {
		// Checkout dismissed: the attempt just ends here.
		c.log.Debug(ctx, "checkout dismissed", "component", comp.ID, "order", order.ID)
		return nil
	}

	user, err := c.api.VerifyPayment(ctx, token, *proof, comp.ID)
	if err != nil {
		c.notices.Publish(verifyFailedNotice)
		c.log.Warn(ctx, "payment verification failed, access not granted",
			"component", comp.ID, "order", order.ID, "error", err)
		return err
	}

	if !c.session.ReplaceUser(token, user) {
		// The session moved on while the checkout was open; the verified
		// purchase belongs to a credential that is no longer current.
		c.log.Warn(ctx, "discarding verified purchase for a stale session",
			"component", comp.ID, "order", order.ID)
		return nil
	}

	if err := c.catalog.Refresh(ctx); err != nil {
		c.log.Warn(ctx, "post-purchase catalog refresh failed", "error", err)
	}
	c.log.Info(ctx, "purchase complete", "component", comp.ID, "order", order.ID)
	return nil
}

// collectPayment opens the external checkout and waits for it to finish.
// A nil proof with a nil error means the buyer dismissed the checkout.
func (c *Coordinator) collectPayment(ctx context.Context, order *models.Order, comp models.Component) (*models.PaymentProof, error) {
	var (
		mu    sync.Mutex
		proof *models.PaymentProof
	)

	req := CheckoutRequest{
		Key:         order.RazorpayKey,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        c.storeName,
		Description: comp.Name,
		Receipt:     uuid.NewString(),
		Prefill:     c.prefill(),
		Handler: func(p models.PaymentProof) {
			mu.Lock()
			defer mu.Unlock()
			if proof == nil {
				proof = &p
			}
		},
	}

	if err := c.opener.Open(ctx, req); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return proof, nil
}

func (c *Coordinator) prefill() Prefill {
	user := c.session.User()
	if user == nil {
		return Prefill{}
	}
	return Prefill{Name: user.Name, Email: user.Email, Contact: user.Mobile}
}

func (c *Coordinator) begin(componentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.active[componentID]; busy {
		return false
	}
	c.active[componentID] = struct{}{}
	return true
}

func (c *Coordinator) end(componentID string) {
	c.mu.Lock()
	delete(c.active, componentID)
	c.mu.Unlock()
}
