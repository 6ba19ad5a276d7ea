package session

import (
	"context"
	"sync"

	"github.com/sprinklerworks/sprinklerctl/internal/console/nav"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
	"github.com/sprinklerworks/sprinklerctl/internal/logging"
)

// State is the session lifecycle. StateUninitialized holds from construction
// until the first Refresh resolves; protected views must not render before
// that.
type State int

const (
	StateUninitialized State = iota
	StateUnauthenticated
	StateAuthenticated
)

// Verifier asks the device whether the stored credential is still accepted
// and reports the bare status code. Implemented by api.Client.
type Verifier interface {
	VerifyAuthorization(ctx context.Context) (int, error)
}

// Store is the single source of truth for "is there a valid session, and who
// is it". SignIn, SignOut, Invalidate and Refresh are the only transitions.
type Store struct {
	storage         *CredentialStorage
	verifier        Verifier
	notifier        notify.Notifier
	router          *nav.Router
	log             logging.Logger
	securityEnabled bool

	mu        sync.Mutex
	state     State
	principal Principal
}

func NewStore(storage *CredentialStorage, verifier Verifier, notifier notify.Notifier, router *nav.Router, log logging.Logger, securityEnabled bool) *Store {
	return &Store{
		storage:         storage,
		verifier:        verifier,
		notifier:        notifier,
		router:          router,
		log:             log,
		securityEnabled: securityEnabled,
		state:           StateUninitialized,
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Principal returns the authenticated identity, if any.
func (s *Store) Principal() (Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal, s.state == StateAuthenticated
}

func (s *Store) publish(state State, p Principal) {
	s.mu.Lock()
	s.state = state
	s.principal = p
	s.mu.Unlock()
}

// SignIn decodes and persists a fresh credential. A decode failure never
// leaves a half-set session: the stored credential is cleared and the store
// goes unauthenticated before the error is returned.
func (s *Store) SignIn(ctx context.Context, token string, remember bool) error {
	p, err := DecodeClaims(token)
	if err != nil {
		_ = s.storage.Clear(ctx)
		s.publish(StateUnauthenticated, Principal{})
		return err
	}

	if err := s.storage.Persist(ctx, token, remember); err != nil {
		s.publish(StateUnauthenticated, Principal{})
		return err
	}

	s.publish(StateAuthenticated, p)
	s.notifier.Success("Logged in as " + p.Username)
	return nil
}

// SignOut clears the credential, publishes "no principal" and returns the
// console to the public landing route. Safe to call with no session.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored credential", "error", err)
	}
	s.publish(StateUnauthenticated, Principal{})
	s.notifier.Success("You have signed out.")
	s.router.Go(nav.RouteSignIn)
}

// Invalidate is the forced sign-out used by the 401 path: same effect as
// SignOut but without the sign-out notification or navigation, both of which
// the caller owns.
func (s *Store) Invalidate(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored credential", "error", err)
	}
	s.publish(StateUnauthenticated, Principal{})
}

// Refresh re-derives the principal and is the only transition out of
// StateUninitialized. With security disabled it synthesizes a fixed admin
// principal without touching the network. Otherwise a stored credential is
// put to the device's verification endpoint; anything but 200 — or a
// transport failure — publishes "no principal" without being fatal.
func (s *Store) Refresh(ctx context.Context) {
	if !s.securityEnabled {
		s.publish(StateAuthenticated, Principal{Username: "admin", Admin: true})
		return
	}

	token, err := s.storage.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored credential", "error", err)
		s.publish(StateUnauthenticated, Principal{})
		return
	}
	if token == "" {
		s.publish(StateUnauthenticated, Principal{})
		return
	}

	status, err := s.verifier.VerifyAuthorization(ctx)
	if err != nil {
		s.publish(StateUnauthenticated, Principal{})
		s.notifier.Error("Error verifying authorization: " + err.Error())
		return
	}
	if status != 200 {
		s.publish(StateUnauthenticated, Principal{})
		return
	}

	p, err := DecodeClaims(token)
	if err != nil {
		_ = s.storage.Clear(ctx)
		s.publish(StateUnauthenticated, Principal{})
		return
	}
	s.publish(StateAuthenticated, p)
}
