package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sprinklerworks/sprinklerctl/internal/console/nav"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
)

var (
	// ErrUnauthorized reports that the device rejected the credential. By
	// the time a caller sees it the session is already invalidated and the
	// console redirected to sign-in; callers just stop processing.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUploadCancelled reports that the user aborted an upload, as opposed
	// to a transport failure.
	ErrUploadCancelled = errors.New("upload cancelled")
)

// SessionInvalidator clears the session the way sign-out does, minus the
// sign-out notification. Implemented by the session store.
type SessionInvalidator interface {
	Invalidate(ctx context.Context)
}

// RedirectingClient wraps Client with the 401 contract: any unauthorized
// response invalidates the session, emits one explanatory notification and
// redirects to the sign-in route. This is the only path besides an explicit
// sign-out that mutates session state.
type RedirectingClient struct {
	client   *Client
	session  SessionInvalidator
	router   *nav.Router
	notifier notify.Notifier
}

func NewRedirectingClient(client *Client, session SessionInvalidator, router *nav.Router, notifier notify.Notifier) *RedirectingClient {
	return &RedirectingClient{client: client, session: session, router: router, notifier: notifier}
}

// Do issues the request with the credential attached. On 401 it returns
// ErrUnauthorized after handling the redirect; every other response passes
// through untouched for the caller to interpret.
func (r *RedirectingClient) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	resp, err := r.client.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		r.unauthorized(ctx)
		return nil, ErrUnauthorized
	}
	return resp, nil
}

func (r *RedirectingClient) unauthorized(ctx context.Context) {
	r.session.Invalidate(ctx)
	r.notifier.Info("Authorization expired. Please sign in again.")
	r.router.StoreRedirect(r.router.Current())
	r.router.Go(nav.RouteSignIn)
}
