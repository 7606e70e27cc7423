// Package server wires configuration, storage, archiving and the HTTP API
// of the kbclip reference backend, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sc "github.com/dmitrijs2005/kbclip/internal/server/config"

	"github.com/dmitrijs2005/kbclip/internal/logging"
	"github.com/dmitrijs2005/kbclip/internal/server/archive"
	"github.com/dmitrijs2005/kbclip/internal/server/httpapi"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/kbclip/internal/server/services"
)

// seams for tests
var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newArchiver    = func(ctx context.Context, c *sc.Config) (archive.Archiver, error) {
		return archive.NewS3ArchiverFromConfig(ctx, c)
	}
)

type App struct {
	config       *sc.Config
	logger       logging.Logger
	db           *sql.DB
	tokenService *services.TokenService
	entryService *services.EntryService
}

func NewApp(ctx context.Context, c *sc.Config, logger logging.Logger) (*App, error) {

	if logger == nil {
		logger = logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var archiver archive.Archiver
	if c.ArchiveEnabled {
		archiver, err = newArchiver(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("archive init error: %w", err)
		}
	}

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		tokenService: services.NewTokenService(db, rm, c),
		entryService: services.NewEntryService(db, rm, archiver, logger),
	}, nil
}

// IssueToken mints a one-time login token for userID.
func (app *App) IssueToken(ctx context.Context, userID string) (string, error) {
	return app.tokenService.Issue(ctx, userID)
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.ListenAddr, app.logger, app.tokenService, app.entryService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeExpiredTokens periodically deletes login tokens that can no longer be used.
func (app *App) purgeExpiredTokens(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.tokenService.PurgeExpired(ctx)
			if err != nil {
				app.logger.Warn(ctx, "purge expired login tokens", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "purged expired login tokens", "count", n)
			}
		}
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		interval := app.config.LoginTokenValidityDuration
		if interval <= 0 {
			interval = time.Minute
		}
		app.purgeExpiredTokens(ctx, interval)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
