package purchase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/catalog"
	"github.com/example/uikart/internal/client/models"
	"github.com/example/uikart/internal/client/notify"
	"github.com/example/uikart/internal/client/session"
	"github.com/example/uikart/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAPI struct {
	api.Client

	LoginToken string
	LoginUser  *models.User

	Components []models.Component

	Order    *models.Order
	OrderErr error

	VerifiedUser *models.User
	VerifyErr    error

	OrderCalls       int
	LastOrderAmount  int64
	LastOrderCcy     string
	LastVerifyProof  models.PaymentProof
	LastVerifyCompID string
	ListCalls        int
}

func (f *fakeAPI) Login(context.Context, string, string) (string, *models.User, error) {
	return f.LoginToken, f.LoginUser, nil
}

func (f *fakeAPI) ListComponents(context.Context, string) ([]models.Component, error) {
	f.ListCalls++
	return f.Components, nil
}

func (f *fakeAPI) CreateOrder(_ context.Context, _ string, amountMinor int64, currency string) (*models.Order, error) {
	f.OrderCalls++
	f.LastOrderAmount = amountMinor
	f.LastOrderCcy = currency
	return f.Order, f.OrderErr
}

func (f *fakeAPI) VerifyPayment(_ context.Context, _ string, proof models.PaymentProof, componentID string) (*models.User, error) {
	f.LastVerifyProof = proof
	f.LastVerifyCompID = componentID
	return f.VerifiedUser, f.VerifyErr
}

// payingOpener completes the checkout synchronously with the given proof.
type payingOpener struct {
	proof   models.PaymentProof
	opened  int
	lastReq CheckoutRequest
}

func (o *payingOpener) Open(_ context.Context, req CheckoutRequest) error {
	o.opened++
	o.lastReq = req
	req.Handler(o.proof)
	return nil
}

// dismissingOpener returns without ever invoking the handler.
type dismissingOpener struct{ opened int }

func (o *dismissingOpener) Open(context.Context, CheckoutRequest) error {
	o.opened++
	return nil
}

// hookOpener runs a hook while the checkout is "open", then pays.
type hookOpener struct {
	hook  func()
	proof models.PaymentProof
}

func (o *hookOpener) Open(_ context.Context, req CheckoutRequest) error {
	o.hook()
	req.Handler(o.proof)
	return nil
}

type memStore struct{ token string }

func (m *memStore) Load(context.Context) (string, error) { return m.token, nil }
func (m *memStore) Save(_ context.Context, token string) error {
	m.token = token
	return nil
}
func (m *memStore) Clear(context.Context) error {
	m.token = ""
	return nil
}

type fixture struct {
	api     *fakeAPI
	session *session.Session
	catalog *catalog.Catalog
	notices *notify.Channel
}

func setup(t *testing.T, f *fakeAPI, opener Opener) (*Coordinator, *fixture) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	notices := notify.New(time.Hour)
	sess := session.New(f, &memStore{}, notices, log)
	cat := catalog.New(f, sess, log)
	require.NoError(t, sess.Initialize(context.Background()))

	coord := NewCoordinator(f, sess, cat, notices, opener, log, "UIKart", "INR")
	return coord, &fixture{api: f, session: sess, catalog: cat, notices: notices}
}

func login(t *testing.T, fx *fixture) {
	t.Helper()
	require.NoError(t, fx.session.Login(context.Background(), "a@b.com", "pw"))
}

var paidComponent = models.Component{ID: "x", Name: "Glow Button", Price: 500}

// ---- tests ----

func TestBuy_FreeComponentNeverCreatesOrder(t *testing.T) {
	f := &fakeAPI{LoginToken: "t1", LoginUser: &models.User{ID: 1}}
	opener := &dismissingOpener{}
	coord, fx := setup(t, f, opener)
	login(t, fx)

	err := coord.Buy(context.Background(), models.Component{ID: "free", Price: 0})
	require.ErrorIs(t, err, ErrFreeComponent)
	require.Zero(t, f.OrderCalls)
	require.Zero(t, opener.opened)
}

func TestBuy_RequiresAuthenticatedSession(t *testing.T) {
	f := &fakeAPI{}
	coord, _ := setup(t, f, &dismissingOpener{})

	err := coord.Buy(context.Background(), paidComponent)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Zero(t, f.OrderCalls)
}

func TestBuy_ConvertsPriceToMinorUnits(t *testing.T) {
	f := &fakeAPI{
		LoginToken: "t1",
		LoginUser:  &models.User{ID: 1},
		Order:      &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR", RazorpayKey: "rzp_test"},
	}
	coord, fx := setup(t, f, &dismissingOpener{})
	login(t, fx)

	require.NoError(t, coord.Buy(context.Background(), paidComponent))
	require.Equal(t, int64(50000), f.LastOrderAmount)
	require.Equal(t, "INR", f.LastOrderCcy)
}

func TestBuy_OrderCreateFailureAbortsBeforeCheckout(t *testing.T) {
	f := &fakeAPI{
		LoginToken: "t1",
		LoginUser:  &models.User{ID: 1},
		OrderErr:   api.ErrOrderNotCreated,
	}
	opener := &dismissingOpener{}
	coord, fx := setup(t, f, opener)
	login(t, fx)

	require.Error(t, coord.Buy(context.Background(), paidComponent))

	require.Zero(t, opener.opened)
	msg, ok := fx.notices.Current()
	require.True(t, ok)
	require.Equal(t, "Could not create order.", msg)
}

func TestBuy_DismissedCheckoutChangesNothing(t *testing.T) {
	f := &fakeAPI{
		LoginToken: "t1",
		LoginUser:  &models.User{ID: 1},
		Order:      &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR"},
	}
	opener := &dismissingOpener{}
	coord, fx := setup(t, f, opener)
	login(t, fx)
	userBefore := fx.session.User()

	require.NoError(t, coord.Buy(context.Background(), paidComponent))

	require.Equal(t, 1, opener.opened)
	require.Same(t, userBefore, fx.session.User())
	_, ok := fx.notices.Current()
	require.False(t, ok)
}

func TestBuy_SuccessReplacesUserWholesaleAndRefreshesCatalog(t *testing.T) {
	updated := &models.User{ID: 1, PurchasedComponents: []string{"x"}}
	f := &fakeAPI{
		LoginToken:   "t1",
		LoginUser:    &models.User{ID: 1},
		Order:        &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR", RazorpayKey: "rzp_test"},
		VerifiedUser: updated,
		Components:   []models.Component{paidComponent},
	}
	opener := &payingOpener{proof: models.PaymentProof{OrderID: "ord_1", PaymentID: "pay_1", Signature: "sig"}}
	coord, fx := setup(t, f, opener)
	login(t, fx)
	listCallsAfterLogin := f.ListCalls

	require.NoError(t, coord.Buy(context.Background(), paidComponent))

	require.Same(t, updated, fx.session.User())
	require.Equal(t, "x", f.LastVerifyCompID)
	require.Equal(t, "pay_1", f.LastVerifyProof.PaymentID)
	require.Equal(t, listCallsAfterLogin+1, f.ListCalls)

	// The checkout got the order handle and provider key.
	require.Equal(t, "ord_1", opener.lastReq.OrderID)
	require.Equal(t, "rzp_test", opener.lastReq.Key)
	require.Equal(t, "UIKart", opener.lastReq.Name)
	require.NotEmpty(t, opener.lastReq.Receipt)
}

func TestBuy_VerificationFailureLeavesUserUntouched(t *testing.T) {
	f := &fakeAPI{
		LoginToken: "t1",
		LoginUser:  &models.User{ID: 1},
		Order:      &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR"},
		VerifyErr:  api.ErrPaymentNotVerified,
	}
	opener := &payingOpener{proof: models.PaymentProof{OrderID: "ord_1", PaymentID: "pay_1", Signature: "sig"}}
	coord, fx := setup(t, f, opener)
	login(t, fx)
	userBefore := fx.session.User()

	require.Error(t, coord.Buy(context.Background(), paidComponent))

	require.Same(t, userBefore, fx.session.User())
	msg, ok := fx.notices.Current()
	require.True(t, ok)
	require.Equal(t, "Payment verification failed.", msg)
}

func TestBuy_SecondAttemptOnSameComponentIsRejected(t *testing.T) {
	f := &fakeAPI{
		LoginToken:   "t1",
		LoginUser:    &models.User{ID: 1},
		Order:        &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR"},
		VerifiedUser: &models.User{ID: 1, PurchasedComponents: []string{"x"}},
	}

	var coord *Coordinator
	var overlapErr error
	opener := &hookOpener{
		proof: models.PaymentProof{OrderID: "ord_1", PaymentID: "pay_1", Signature: "sig"},
		hook: func() {
			overlapErr = coord.Buy(context.Background(), paidComponent)
		},
	}

	coord2, fx := setup(t, f, opener)
	coord = coord2
	login(t, fx)

	require.NoError(t, coord.Buy(context.Background(), paidComponent))
	require.ErrorIs(t, overlapErr, ErrPurchaseInProgress)
	require.Equal(t, 1, f.OrderCalls)
}

func TestBuy_LogoutDuringCheckoutDiscardsVerifiedPurchase(t *testing.T) {
	f := &fakeAPI{
		LoginToken:   "t1",
		LoginUser:    &models.User{ID: 1},
		Order:        &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR"},
		VerifiedUser: &models.User{ID: 1, PurchasedComponents: []string{"x"}},
	}

	var fx *fixture
	opener := &hookOpener{
		proof: models.PaymentProof{OrderID: "ord_1", PaymentID: "pay_1", Signature: "sig"},
		hook: func() {
			fx.session.Logout(context.Background())
		},
	}

	coord, fx2 := setup(t, f, opener)
	fx = fx2
	login(t, fx)

	require.NoError(t, coord.Buy(context.Background(), paidComponent))

	require.Equal(t, session.StateAnonymous, fx.session.State())
	require.Nil(t, fx.session.User())
}

func TestBuy_OpenerErrorPropagates(t *testing.T) {
	f := &fakeAPI{
		LoginToken: "t1",
		LoginUser:  &models.User{ID: 1},
		Order:      &models.Order{ID: "ord_1", Amount: 50000, Currency: "INR"},
	}
	opener := &erroringOpener{err: errors.New("display failure")}
	coord, fx := setup(t, f, opener)
	login(t, fx)

	require.Error(t, coord.Buy(context.Background(), paidComponent))
	require.NotNil(t, fx.session.User())
}

type erroringOpener struct{ err error }

func (o *erroringOpener) Open(context.Context, CheckoutRequest) error { return o.err }
