// Package services contains the business logic of the reference backend:
// exchanging one-time login tokens for session credentials and storing
// captured pages.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/cryptox"
	"github.com/dmitrijs2005/kbclip/internal/dbx"
	"github.com/dmitrijs2005/kbclip/internal/server/auth"
	"github.com/dmitrijs2005/kbclip/internal/server/config"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/repomanager"
)

// loginTokenBytes is the entropy of an issued login token (hex encoded to twice the length).
const loginTokenBytes = 24

// TokenService issues one-time login tokens and exchanges them for session
// credentials.
type TokenService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	secret             []byte
	sessionValidity    time.Duration
	loginTokenValidity time.Duration
	now                func() time.Time
}

func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		db:                 db,
		repomanager:        m,
		secret:             []byte(cfg.SecretKey),
		sessionValidity:    cfg.SessionValidityDuration,
		loginTokenValidity: cfg.LoginTokenValidityDuration,
		now:                time.Now,
	}
}

// Issue mints a one-time login token for userID. Only its keyed digest is stored.
func (s *TokenService) Issue(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", common.ErrValidation)
	}

	token, err := common.MakeRandHexString(loginTokenBytes)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	repo := s.repomanager.LoginTokens(s.db)
	if err := repo.Create(ctx, userID, cryptox.TokenDigest(s.secret, token), s.loginTokenValidity); err != nil {
		return "", fmt.Errorf("error saving token: %w", err)
	}
	return token, nil
}

// Verify consumes a one-time login token and returns the owner and a fresh
// session credential.
//
// Errors: common.ErrInvalidToken (unknown), common.ErrTokenExpired,
// common.ErrTokenAlreadyUsed, or a wrapped storage error.
func (s *TokenService) Verify(ctx context.Context, token string) (userID string, credential string, err error) {
	digest := cryptox.TokenDigest(s.secret, token)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.LoginTokens(tx)

		t, err := repo.Find(ctx, digest)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching login token: %w", err)
		}
		if t.Used() {
			return common.ErrTokenAlreadyUsed
		}
		if t.Expired(s.now()) {
			return common.ErrTokenExpired
		}
		if err := repo.MarkUsed(ctx, digest); err != nil {
			return err
		}
		userID = t.UserID
		return nil
	})
	if err != nil {
		return "", "", err
	}

	credential, err = auth.GenerateToken(userID, s.secret, s.sessionValidity)
	if err != nil {
		return "", "", fmt.Errorf("error generating credential: %w", err)
	}
	return userID, credential, nil
}

// UserFromCredential validates a session credential and returns its user id.
func (s *TokenService) UserFromCredential(credential string) (string, error) {
	return auth.GetUserIDFromToken(credential, s.secret)
}

// PurgeExpired deletes expired login tokens.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repomanager.LoginTokens(s.db).DeleteExpired(ctx, s.now())
}
