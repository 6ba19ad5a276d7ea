package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/gate"
	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
)

// signInView is the public-only view: an already-authenticated visitor is
// sent to the stored destination instead.
func (a *App) signInView(ctx context.Context) {
	err := a.gate.AdmitPublic(ctx, a.defaultRoute(), func(ctx context.Context, _ session.Principal) error {
		return a.signIn(ctx)
	})
	if errors.Is(err, gate.ErrAlreadyAuthenticated) {
		fmt.Fprintln(a.out, "Already signed in.")
	}
}

func (a *App) signIn(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	remember, err := GetConfirmation(a.reader, "Stay signed in on this machine?", a.out)
	if err != nil {
		return err
	}

	body, err := json.Marshal(models.SignInRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	// Sign-in goes out unauthenticated by definition; the plain client is
	// used so a stale 401 cannot loop back into the redirect path.
	resp, err := a.client.Do(ctx, http.MethodPost, api.SignInEndpoint, bytes.NewReader(body))
	if err != nil {
		a.notifier.Warning(err.Error())
		return nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var signIn models.SignInResponse
		if err := json.NewDecoder(resp.Body).Decode(&signIn); err != nil {
			a.notifier.Warning("Invalid sign-in response: " + err.Error())
			return nil
		}
		if err := a.sessions.SignIn(ctx, signIn.AccessToken, remember); err != nil {
			a.notifier.Warning("Failed to parse access token: " + err.Error())
			return nil
		}
		a.router.Go(a.router.ConsumeRedirect(a.defaultRoute()))
	case http.StatusUnauthorized:
		a.notifier.Warning("Invalid credentials.")
	default:
		a.notifier.Warning(fmt.Sprintf("Invalid status code: %d", resp.StatusCode))
	}
	return nil
}
