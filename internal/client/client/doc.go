// Package client contains the remote side of the kbclip client.
//
// # Overview
//
//  1. A transport-agnostic contract (Verifier, Submitter, Client) used by the
//     controller: exchange a one-time token for a Session, and submit a
//     capture record authorised by the session credential.
//  2. HTTPClient, the JSON/HTTP implementation. Every call is one attempt,
//     bounded by a timeout; there is no retry.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): the SQLite
//     file that backs the session store, migrated with embedded goose files.
//
// # Error Handling
//
// Every remote failure is a *Failure whose Kind is ErrVerificationFailed or
// ErrCaptureFailed and whose Reason is a user-facing sentence. The cause
// (ErrTimeout, ErrUnavailable, ErrUnauthorized) is reachable with errors.Is.
package client
