// Package session is the single authority for "who is logged in".
//
// A session starts in the loading state, resolves to authenticated or
// anonymous during Initialize, and afterwards moves between those two states
// only through Login, Signup, and Logout. The persistent credential store is
// the write-through target for the bearer token: the in-memory session never
// holds a token the store does not, except while the startup verification is
// still in flight.
//
// Interested components subscribe to the two transition triggers with
// OnAdopted and OnCleared; subscribers run synchronously after the state has
// been updated, so anything they fetch is guaranteed to observe the adopted
// credential.
package session

import (
	"context"
	"slices"
	"sync"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/models"
	"github.com/example/uikart/internal/client/notify"
	"github.com/example/uikart/internal/client/repositories/credentials"
	"github.com/example/uikart/internal/logging"
)

// State is the session lifecycle state. Loading is entered exactly once, at
// startup, and left as soon as Initialize resolves.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Fallback notices when the backend rejection carries no message of its own.
const (
	loginFallback  = "Login failed."
	signupFallback = "Signup failed."
)

type Session struct {
	api     api.Client
	store   credentials.Repository
	notices *notify.Channel
	log     logging.Logger

	mu    sync.Mutex
	state State
	token string
	user  *models.User

	onAdopted []func(token string)
	onCleared []func()
}

func New(apiClient api.Client, store credentials.Repository, notices *notify.Channel, log logging.Logger) *Session {
	return &Session{
		api:     apiClient,
		store:   store,
		notices: notices,
		log:     log,
		state:   StateLoading,
	}
}

// OnAdopted registers fn to run after every transition into authenticated,
// with the adopted token. Registration is expected before Initialize.
func (s *Session) OnAdopted(fn func(token string)) {
	s.mu.Lock()
	s.onAdopted = append(s.onAdopted, fn)
	s.mu.Unlock()
}

// OnCleared registers fn to run after every transition into anonymous.
func (s *Session) OnCleared(fn func()) {
	s.mu.Lock()
	s.onCleared = append(s.onCleared, fn)
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the current credential, or "" when anonymous or loading.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached identity record, or nil. The record is replaced
// wholesale on every auth and purchase response, never mutated in place.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Initialize resolves the startup loading state. A stored credential is
// verified against the backend; a rejected or unverifiable credential is
// discarded from the store and the session demotes to anonymous without any
// user-visible error. Consumers must not use the session before Initialize
// returns.
func (s *Session) Initialize(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		s.transitionAnonymous(ctx, false)
		return err
	}
	if token == "" {
		s.transitionAnonymous(ctx, false)
		return nil
	}

	user, err := s.api.Verify(ctx, token)
	if err != nil || user == nil {
		if err != nil {
			s.log.Info(ctx, "stored credential rejected, demoting to anonymous", "error", err)
		}
		s.transitionAnonymous(ctx, true)
		return nil
	}

	s.adopt(ctx, token, user, false)
	return nil
}

// Login authenticates and, on success, atomically adopts the returned
// credential and user. On failure the session state is untouched and the
// backend's message (or a default) is published as a transient notice.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.notices.Publish(api.UserMessage(err, loginFallback))
		return err
	}
	s.adopt(ctx, token, user, true)
	return nil
}

// Signup registers a new account; the success and failure paths mirror Login.
func (s *Session) Signup(ctx context.Context, name, email, mobile, password string) error {
	token, user, err := s.api.Signup(ctx, name, email, mobile, password)
	if err != nil {
		s.notices.Publish(api.UserMessage(err, signupFallback))
		return err
	}
	s.adopt(ctx, token, user, true)
	return nil
}

// Logout unconditionally clears the credential and user and transitions to
// anonymous. It never fails: a store error is logged and the in-memory state
// is cleared regardless.
func (s *Session) Logout(ctx context.Context) {
	s.transitionAnonymous(ctx, true)
}

// ReplaceUser swaps the cached user wholesale, but only when token is still
// the current credential. Responses that raced with a logout or re-login are
// reported as not applied and must be discarded by the caller.
func (s *Session) ReplaceUser(token string, user *models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.token != token {
		return false
	}
	s.user = user
	return true
}

// adopt moves the session to authenticated. The store is written first so
// the durable credential never lags the in-memory one; subscribers run after
// the state is in place.
func (s *Session) adopt(ctx context.Context, token string, user *models.User, persist bool) {
	if persist {
		if err := s.store.Save(ctx, token); err != nil {
			// The session still adopts in memory; the next startup will
			// simply re-authenticate.
			s.log.Error(ctx, "failed to persist credential", "error", err)
		}
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = token
	s.user = user
	subs := slices.Clone(s.onAdopted)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
}

func (s *Session) transitionAnonymous(ctx context.Context, clearStore bool) {
	if clearStore {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to clear stored credential", "error", err)
		}
	}

	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	subs := slices.Clone(s.onCleared)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
