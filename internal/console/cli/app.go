// Package cli is the terminal console: a REPL whose commands are the views
// of the original web interface, each admitted through the access gate and
// bound to the device through the shared fetch layer.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/config"
	"github.com/sprinklerworks/sprinklerctl/internal/console/gate"
	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
	"github.com/sprinklerworks/sprinklerctl/internal/console/nav"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
	"github.com/sprinklerworks/sprinklerctl/internal/logging"
)

// App bundles the console's long-lived components. Construct once at process
// start, Run, then Close.
type App struct {
	cfg      *config.Config
	log      logging.Logger
	notifier notify.Notifier
	router   *nav.Router
	features models.Features

	db       *sql.DB
	storage  *session.CredentialStorage
	sessions *session.Store
	client   *api.Client
	fetch    *api.RedirectingClient
	gate     *gate.Gate

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the console against one device. It fetches the device's
// feature set first; without it the console refuses to start, mirroring the
// original interface's application error screen.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, cfg.DatabaseFile)
	if err != nil {
		return nil, err
	}

	storage := session.NewCredentialStorage(session.NewSQLiteRepository(db), session.NewMemoryRepository())
	notifier := notify.NewTerminalNotifier(os.Stdout)
	router := nav.NewRouter()
	client := api.NewClient(cfg.DeviceURL, &http.Client{Timeout: cfg.RequestTimeout}, storage)

	features, err := fetchFeatures(ctx, client)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to fetch device features: %w", err)
	}

	sessions := session.NewStore(storage, client, notifier, router, log, features.Security)
	fetch := api.NewRedirectingClient(client, sessions, router, notifier)

	return &App{
		cfg:      cfg,
		log:      log,
		notifier: notifier,
		router:   router,
		features: features,
		db:       db,
		storage:  storage,
		sessions: sessions,
		client:   client,
		fetch:    fetch,
		gate:     gate.New(sessions, router, notifier),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func fetchFeatures(ctx context.Context, client *api.Client) (models.Features, error) {
	var features models.Features

	resp, err := client.Do(ctx, http.MethodGet, api.FeaturesEndpoint, nil)
	if err != nil {
		return features, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return features, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return features, err
	}
	return features, nil
}

// defaultRoute is where a fresh sign-in lands when no destination was
// stored: the sprinkler view when the project feature is on, WiFi otherwise.
func (a *App) defaultRoute() nav.Route {
	if a.features.Project {
		return nav.RouteSprinkler
	}
	return nav.RouteWiFi
}

// Run refreshes the session once and enters the REPL. The session store
// stays uninitialized until that first refresh resolves, so no protected
// view can render early.
func (a *App) Run(ctx context.Context) {
	a.sessions.Refresh(ctx)
	a.root(ctx)
}

// Close releases the credential database.
func (a *App) Close() error {
	return a.db.Close()
}
