// Package services contains the application services of the kbclip client:
// authentication (one-time token exchange, session persistence), page
// capture, and the Controller state machine that the REPL drives.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kbclip/internal/client/client"
	"github.com/dmitrijs2005/kbclip/internal/client/session"
)

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login: exchange a one-time token for a Session and persist it.
//   - Logout: remove the persisted Session.
//   - CurrentSession: the persisted Session, if a complete one exists.
//
// The one-time token itself is never persisted.
type AuthService interface {
	Login(ctx context.Context, token string) (session.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (session.Session, bool)
}

type authService struct {
	verifier client.Verifier
	store    session.Store
}

func NewAuthService(verifier client.Verifier, store session.Store) AuthService {
	return &authService{verifier: verifier, store: store}
}

// Login verifies token remotely and stores the resulting Session.
// Verification failures are returned unchanged (a *client.Failure).
func (a *authService) Login(ctx context.Context, token string) (session.Session, error) {
	s, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return session.Session{}, err
	}

	if err := a.store.Write(ctx, s); err != nil {
		return session.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) CurrentSession(ctx context.Context) (session.Session, bool) {
	return a.store.Read(ctx)
}
