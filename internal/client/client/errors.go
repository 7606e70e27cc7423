package client

import (
	"errors"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTimeout      = errors.New("request timed out")

	// ErrVerificationFailed is the kind of every Verify failure.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrCaptureFailed is the kind of every Submit failure.
	ErrCaptureFailed = errors.New("capture failed")
)

// Failure is a remote-call failure with a message fit for the user.
//
// errors.Is(err, f.Kind) holds, and the underlying cause (transport error,
// ErrTimeout, ErrUnauthorized, ...) stays reachable through Unwrap.
type Failure struct {
	Kind   error
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	return f.Reason
}

func (f *Failure) Is(target error) bool {
	return target == f.Kind
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Reason returns the user-facing reason carried by err, or fallback when
// err is not a *Failure.
func Reason(err error, fallback string) string {
	var f *Failure
	if errors.As(err, &f) && f.Reason != "" {
		return f.Reason
	}
	return fallback
}
