package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/catalog"
	"github.com/example/uikart/internal/client/models"
	"github.com/example/uikart/internal/client/notify"
	"github.com/example/uikart/internal/client/purchase"
	"github.com/example/uikart/internal/client/session"
	"github.com/example/uikart/internal/logging"
)

// marketAPI is an in-memory stand-in for the backend gateway.
type marketAPI struct {
	token string
	user  *models.User
	comps []models.Component

	loginEmail string
	loginPass  string
	signupName string
	seedMsg    string
	seedErr    error
	seedCalled bool
	listCalls  int
	orderCalls int
}

func (m *marketAPI) Login(_ context.Context, email, password string) (string, *models.User, error) {
	m.loginEmail, m.loginPass = email, password
	return m.token, m.cloneUser(), nil
}

func (m *marketAPI) Signup(_ context.Context, name, email, mobile, password string) (string, *models.User, error) {
	m.signupName = name
	m.user = &models.User{ID: 1, Name: name, Email: email, Mobile: mobile}
	return m.token, m.cloneUser(), nil
}

func (m *marketAPI) Verify(_ context.Context, token string) (*models.User, error) {
	if token != m.token {
		return nil, api.ErrUnavailable
	}
	return m.cloneUser(), nil
}

func (m *marketAPI) ListComponents(_ context.Context, _ string) ([]models.Component, error) {
	m.listCalls++
	return append([]models.Component(nil), m.comps...), nil
}

func (m *marketAPI) Seed(_ context.Context, _ string) (string, error) {
	m.seedCalled = true
	return m.seedMsg, m.seedErr
}

func (m *marketAPI) CreateOrder(_ context.Context, _ string, amountMinor int64, currency string) (*models.Order, error) {
	m.orderCalls++
	return &models.Order{ID: "order_test", Amount: amountMinor, Currency: currency, RazorpayKey: "rzp_test"}, nil
}

func (m *marketAPI) VerifyPayment(_ context.Context, _ string, _ models.PaymentProof, componentID string) (*models.User, error) {
	m.user.PurchasedComponents = append(m.user.PurchasedComponents, componentID)
	return m.cloneUser(), nil
}

func (m *marketAPI) cloneUser() *models.User {
	if m.user == nil {
		return nil
	}
	u := *m.user
	u.PurchasedComponents = append([]string(nil), m.user.PurchasedComponents...)
	return &u
}

// memStore keeps the credential in memory.
type memStore struct{ token string }

func (s *memStore) Load(context.Context) (string, error)      { return s.token, nil }
func (s *memStore) Save(_ context.Context, t string) error    { s.token = t; return nil }
func (s *memStore) Clear(context.Context) error               { s.token = ""; return nil }

// payingOpener completes every checkout immediately.
type payingOpener struct{}

func (payingOpener) Open(_ context.Context, req purchase.CheckoutRequest) error {
	req.Handler(models.PaymentProof{OrderID: req.OrderID, PaymentID: "pay_test", Signature: "sig_test"})
	return nil
}

func newTestApp(t *testing.T, backend *marketAPI) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	notices := notify.New(50 * time.Millisecond)
	sess := session.New(backend, &memStore{}, notices, log)
	cat := catalog.New(backend, sess, log)
	buyer := purchase.NewCoordinator(backend, sess, cat, notices, payingOpener{}, log, "UIKart", "INR")

	return &App{
		api:     backend,
		session: sess,
		catalog: cat,
		buyer:   buyer,
		notices: notices,
		log:     log,
		out:     out,
	}, out
}

func testBackend() *marketAPI {
	return &marketAPI{
		token: "tok-1",
		user:  &models.User{ID: 7, Name: "Alice", Email: "alice@example.org", Mobile: "555-0100"},
		comps: []models.Component{
			{ID: "btn-basic", Name: "Basic Button", Description: "A plain button", Price: 0, Code: "<button>ok</button>"},
			{ID: "card-pro", Name: "Pro Card", Description: "A fancy card", Price: 500, Code: "<div class=\"card\"/>"},
		},
	}
}
