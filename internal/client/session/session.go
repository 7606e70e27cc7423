// Package session persists the durable login session of the capture client.
//
// A Session is the pair (credential, user id). Both halves are written and
// removed together; a record holding only one of them is treated as absent.
// Readers that only need a yes/no answer use Store.Read, which never fails:
// an unreadable store is logged and reported as "no session".
package session

import (
	"context"
	"errors"
)

// Storage keys of the two-key session record.
const (
	KeyCredential = "sessionCredential"
	KeyUserID     = "userId"
)

var (
	// ErrSessionAbsent means neither key is stored.
	ErrSessionAbsent = errors.New("no session stored")
	// ErrStorageInconsistent means only one of the two keys is stored.
	ErrStorageInconsistent = errors.New("partial session record")
	// ErrStorageUnavailable means the backing storage could not be used.
	ErrStorageUnavailable = errors.New("session storage unavailable")
)

// Session is the durable proof of authentication.
type Session struct {
	Credential string
	UserID     string
}

// Valid reports whether both halves are present.
func (s Session) Valid() bool {
	return s.Credential != "" && s.UserID != ""
}

// Store is the contract the controller depends on.
type Store interface {
	// Read returns the stored session, or false when there is none, the
	// record is partial, or the storage cannot be read.
	Read(ctx context.Context) (Session, bool)
	// Write persists both keys atomically.
	Write(ctx context.Context, s Session) error
	// Clear removes both keys atomically. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

// classify turns a raw (credential, userID) pair into a Session or an error.
func classify(credential, userID string) (Session, error) {
	s := Session{Credential: credential, UserID: userID}
	switch {
	case s.Valid():
		return s, nil
	case credential == "" && userID == "":
		return Session{}, ErrSessionAbsent
	default:
		return Session{}, ErrStorageInconsistent
	}
}

// IsAbsent reports whether err means "no usable session".
func IsAbsent(err error) bool {
	return errors.Is(err, ErrSessionAbsent) ||
		errors.Is(err, ErrStorageInconsistent) ||
		errors.Is(err, ErrStorageUnavailable)
}
