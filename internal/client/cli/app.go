package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/kbclip/internal/client/browser"
	"github.com/dmitrijs2005/kbclip/internal/client/client"
	"github.com/dmitrijs2005/kbclip/internal/client/config"
	"github.com/dmitrijs2005/kbclip/internal/client/services"
	"github.com/dmitrijs2005/kbclip/internal/client/session"
	"github.com/dmitrijs2005/kbclip/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config     *config.Config
	controller *services.Controller
	logger     logging.Logger
	reader     *bufio.Reader
	out        io.Writer
	closers    []func() error

	mu   sync.Mutex
	busy bool
}

// NewApp wires the CLI from cfg. An empty DatabasePath keeps the session in
// memory only. A session database that cannot be opened leaves the app
// without persistent storage: it starts logged out and logins are not kept.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{
		config: cfg,
		logger: logger.With("module", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	var store session.Store
	if cfg.DatabasePath == "" {
		store = session.NewMemoryStore()
	} else {
		db, err := client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			a.logger.Warn(ctx, "session storage unavailable", "path", cfg.DatabasePath, "error", err)
		} else {
			a.closers = append(a.closers, db.Close)
		}
		store = session.NewMetadataStore(db, logger)
	}

	apiClient := client.NewHTTPClient(cfg.VerifyEndpointURL, cfg.CaptureEndpointURL, logger,
		client.WithAPIKey(cfg.APIKey),
		client.WithTimeout(cfg.RequestTimeout),
	)

	resolver := browser.NewResolver(a.tabQuerier())

	a.controller = services.NewController(
		services.NewAuthService(apiClient, store),
		services.NewCaptureService(resolver, apiClient),
		logger,
	)
	a.controller.OnChange(a.render)
	return a, nil
}

// tabQuerier picks the tab source: a fixed page given with -u, the browser
// behind -b, or none (captures then report missing browser APIs).
func (a *App) tabQuerier() browser.TabQuerier {
	switch {
	case a.config.StaticTabURL != "":
		title := a.config.StaticTabTitle
		if title == "" {
			title = a.config.StaticTabURL
		}
		return browser.StaticQuerier{Tabs: []browser.Tab{{URL: a.config.StaticTabURL, Title: title}}}
	case a.config.CDPEndpoint != "":
		q := browser.NewPlaywrightQuerier(a.config.CDPEndpoint)
		a.closers = append(a.closers, q.Close)
		return q
	default:
		return nil
	}
}

// Run restores the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.controller.Init(ctx)
	printlnFn("Welcome to kbclip (type 'help' for commands)")
	if !a.isLoggedIn() {
		printlnFn(loginHint)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.controller.IsLoggedIn()
}

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s)", a.controller.View().State)
}
