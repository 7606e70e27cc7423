// Package httpapi exposes the token verification and knowledge base
// endpoints the kbclip client talks to.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/logging"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
	"github.com/dmitrijs2005/kbclip/internal/server/services"
)

const (
	maxRequestBody  = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// TokenVerifier consumes one-time login tokens and checks session credentials.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID string, credential string, err error)
	UserFromCredential(credential string) (string, error)
}

// EntryStore persists and lists knowledge base entries.
type EntryStore interface {
	Add(ctx context.Context, callerID string, in services.NewEntry) (*models.Entry, error)
	List(ctx context.Context, userID string, limit int) ([]models.Entry, error)
}

type HTTPServer struct {
	address string
	tokens  TokenVerifier
	entries EntryStore
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, tokens TokenVerifier, entries EntryStore) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		tokens:  tokens,
		entries: entries,
	}
}

// Handler returns the routed handler with request logging applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+common.VerifyTokenPath, s.verifyToken)
	mux.Handle("POST "+common.KnowledgeBasePath, s.requireBearer(http.HandlerFunc(s.addEntry)))
	mux.Handle("GET "+common.KnowledgeBasePath, s.requireBearer(http.HandlerFunc(s.listEntries)))
	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
