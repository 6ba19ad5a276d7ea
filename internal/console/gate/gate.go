// Package gate guards views on the session state: protected views render
// only for an authenticated principal, public-only views only without one.
package gate

import (
	"context"
	"errors"

	"github.com/sprinklerworks/sprinklerctl/internal/console/nav"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
)

var (
	// ErrNotInitialized defers rendering: the session store has not
	// resolved its first refresh yet, so nothing observable is shown.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrNotAuthenticated reports that the visitor was redirected to
	// sign-in instead of seeing the view.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadyAuthenticated reports that a public-only view was skipped
	// because a session exists.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// SessionSource is the slice of the session store the gate consults.
type SessionSource interface {
	State() session.State
	Principal() (session.Principal, bool)
}

// View is a renderable console view. Protected views receive the principal.
type View func(ctx context.Context, p session.Principal) error

// Gate admits or redirects views. Dependencies are passed in explicitly so
// tests can wire fakes.
type Gate struct {
	sessions SessionSource
	router   *nav.Router
	notifier notify.Notifier
}

func New(sessions SessionSource, router *nav.Router, notifier notify.Notifier) *Gate {
	return &Gate{sessions: sessions, router: router, notifier: notifier}
}

// Admit renders view at dest when a principal exists. Before initialization
// it renders nothing and defers. Without a session it records dest for the
// post-login redirect, tells the user to sign in, and redirects to the
// landing route.
func (g *Gate) Admit(ctx context.Context, dest nav.Route, view View) error {
	switch g.sessions.State() {
	case session.StateUninitialized:
		return ErrNotInitialized
	case session.StateAuthenticated:
		p, _ := g.sessions.Principal()
		g.router.Go(dest)
		return view(ctx, p)
	default:
		g.router.StoreRedirect(dest)
		g.notifier.Info("Please sign in to continue.")
		g.router.Go(nav.RouteSignIn)
		return ErrNotAuthenticated
	}
}

// AdmitPublic renders a public-only view (sign-in). An authenticated visitor
// is sent to the stored destination, or def when none is recorded.
func (g *Gate) AdmitPublic(ctx context.Context, def nav.Route, view View) error {
	switch g.sessions.State() {
	case session.StateUninitialized:
		return ErrNotInitialized
	case session.StateAuthenticated:
		g.router.Go(g.router.ConsumeRedirect(def))
		return ErrAlreadyAuthenticated
	default:
		return view(ctx, session.Principal{})
	}
}
