package purchase

import (
	"context"

	"github.com/example/uikart/internal/client/models"
)

// CheckoutRequest carries everything a checkout surface needs to collect a
// payment for one order. Handler is a one-shot completion callback: the
// opener invokes it with the provider-issued proof once the buyer pays, and
// simply never invokes it when the checkout is dismissed.
type CheckoutRequest struct {
	Key      string
	OrderID  string
	Amount   int64 // minor units, as issued by the order endpoint
	Currency string

	Name        string // store display name
	Description string // component being bought
	Receipt     string // client-generated attempt id

	Prefill Prefill

	Handler func(models.PaymentProof)
}

// Prefill seeds the checkout form with the buyer's known identity.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// Opener is the externally provided checkout capability. Open blocks until
// the checkout completes or is dismissed; the coordinator learns which one
// happened by whether Handler was invoked. Implementations must invoke
// Handler at most once.
type Opener interface {
	Open(ctx context.Context, req CheckoutRequest) error
}
