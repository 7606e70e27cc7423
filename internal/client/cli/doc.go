// Package cli provides the interactive kbclip command-line client.
//
// It wires configuration, the local session database, the HTTP client for
// the verification and knowledge base services, a tab source, and an
// interactive REPL on top of services.Controller.
//
// Key features:
//   - Login with a one-time token (hidden prompt or inline argument)
//   - Logout
//   - Capture the active page into the knowledge base
//   - Status of the current session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// ctx is cancelled. See App and runREPL for details.
package cli
