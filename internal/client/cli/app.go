package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/client/config"
	"github.com/dmitrijs2005/storepulse/internal/client/notify"
	"github.com/dmitrijs2005/storepulse/internal/client/router"
	"github.com/dmitrijs2005/storepulse/internal/client/services"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

// App is the console: one local store, one backend client and the screen
// currently mounted by the router.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	client      client.Client
	store       services.SessionStore
	layout      *router.Layout
	notes       *notify.Center
	syncService services.SyncService
	sessionSvc  services.SessionService

	styles Styles
	out    io.Writer
	reader *bufio.Reader

	screen *screen
}

// NewApp opens the local store at c.SessionDB and wires the console
// against c.APIBaseURL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing local store", "path", c.SessionDB, "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL, client.WithLogger(log.With("component", "http")))
	app := newApp(c, log, apiClient, session.NewStore(db, log.With("component", "session")))
	app.db = db
	return app, nil
}

// newApp wires an App from already built dependencies.
func newApp(c *config.Config, log logging.Logger, apiClient client.Client, store services.SessionStore) *App {
	notes := notify.New()
	return &App{
		config:      c,
		log:         log,
		client:      apiClient,
		store:       store,
		layout:      router.NewLayout(store, notes, log.With("component", "router")),
		notes:       notes,
		syncService: services.NewSyncService(apiClient, store, notes, log.With("component", "sync")),
		sessionSvc:  services.NewSessionService(store, log.With("component", "session")),
		styles:      DefaultStyles(),
		out:         os.Stdout,
		reader:      bufio.NewReader(os.Stdin),
	}
}

// Close unmounts the current screen and closes the local store.
func (a *App) Close() error {
	a.unmount()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.store.Read(ctx) != nil
}

// getStatus renders the prompt status: role and tenant when logged in.
func (a *App) getStatus(ctx context.Context) string {
	sess := a.store.Read(ctx)
	if sess == nil {
		return "(logged out)"
	}
	if sess.TenantID != "" {
		return fmt.Sprintf("(%s %s)", sess.Role.PanelName(), sess.TenantID)
	}
	return fmt.Sprintf("(%s)", sess.Role.PanelName())
}

// flushNotifications prints and forgets pending notifications.
func (a *App) flushNotifications() {
	if ns := a.notes.Drain(); len(ns) > 0 {
		a.println(renderNotifications(a.styles, ns))
	}
}
