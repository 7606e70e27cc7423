package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/kbclip/internal/client/browser"
	"github.com/dmitrijs2005/kbclip/internal/client/client"
	"github.com/dmitrijs2005/kbclip/internal/client/session"
	"github.com/dmitrijs2005/kbclip/internal/logging"
)

// State is the login state of the controller.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// StatusKind classifies the status line for rendering.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
	StatusInfo    StatusKind = "info"
)

// UiStatus is the single user-facing status line. Every action replaces it.
type UiStatus struct {
	Text string
	Kind StatusKind
}

// User-facing messages.
const (
	MsgEnterToken       = "Please enter a token."
	MsgLoginSuccessful  = "Login successful!"
	MsgLoginFailed      = "Login failed. Please try again."
	MsgSessionNotSaved  = "Could not save session. Please try again."
	MsgLoggedOut        = "You have been logged out."
	MsgMustBeLoggedIn   = "You must be logged in to add to Knowledge Base."
	MsgPageAdded        = "Page added to Knowledge Base!"
	MsgAddFailed        = "Failed to add page."
	MsgInvalidURL       = "Cannot add this page. Invalid URL type."
	MsgNoActiveTab      = "Could not find active tab."
	MsgTabsUnavailable  = "Required browser APIs are not available."
	MsgActionInProgress = "Another action is in progress."
)

// View is a snapshot of everything the presentation layer renders.
type View struct {
	State      State
	Status     UiStatus
	TokenInput string
	InProgress bool
}

// Controller owns the login state machine and the status line.
//
// It keeps only the derived login state: the credential lives in the session
// store and is read back when a capture needs it. At most one action runs at
// a time; an action started while another is in flight returns
// MsgActionInProgress without side effects.
type Controller struct {
	auth    AuthService
	capture CaptureService
	logger  logging.Logger

	busy atomic.Bool

	mu         sync.Mutex
	state      State
	status     UiStatus
	tokenInput string
	listeners  []func(View)
}

func NewController(auth AuthService, capture CaptureService, logger logging.Logger) *Controller {
	return &Controller{
		auth:    auth,
		capture: capture,
		logger:  logger.With("module", "controller"),
	}
}

// Init synchronises the login state with the session store once.
func (c *Controller) Init(ctx context.Context) {
	s, ok := c.auth.CurrentSession(ctx)

	c.mu.Lock()
	if ok {
		c.state = LoggedIn
	} else {
		c.state = LoggedOut
	}
	c.mu.Unlock()

	if ok {
		c.logger.Info(ctx, "user previously logged in", "user_id", s.UserID)
	}
	c.notify()
}

// OnChange registers fn to be called with a fresh View after every change.
func (c *Controller) OnChange(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	return View{State: c.state, Status: c.status, TokenInput: c.tokenInput, InProgress: c.busy.Load()}
}

func (c *Controller) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == LoggedIn
}

// SetTokenInput mirrors the token input field.
func (c *Controller) SetTokenInput(v string) {
	c.mu.Lock()
	c.tokenInput = v
	c.mu.Unlock()
	c.notify()
}

// SubmitLogin logs in with the current content of the token input field.
func (c *Controller) SubmitLogin(ctx context.Context) UiStatus {
	c.mu.Lock()
	raw := c.tokenInput
	c.mu.Unlock()
	return c.Login(ctx, raw)
}

// Login exchanges rawToken for a session. Blank input is rejected locally.
// The token input field is cleared after every verification attempt.
func (c *Controller) Login(ctx context.Context, rawToken string) UiStatus {
	if !c.begin() {
		return UiStatus{Text: MsgActionInProgress, Kind: StatusInfo}
	}
	defer c.end()

	c.setStatus(UiStatus{})

	token := strings.TrimSpace(rawToken)
	if token == "" {
		return c.setStatus(UiStatus{Text: MsgEnterToken, Kind: StatusError})
	}

	s, err := c.auth.Login(ctx, token)

	c.mu.Lock()
	c.tokenInput = ""
	c.mu.Unlock()

	if err != nil {
		c.logger.Error(ctx, "login failed", "error", err)
		return c.setStatus(UiStatus{Text: loginFailureText(err), Kind: StatusError})
	}

	c.setState(LoggedIn)
	c.logger.Info(ctx, "session credential and user id stored", "user_id", s.UserID)
	return c.setStatus(UiStatus{Text: MsgLoginSuccessful, Kind: StatusSuccess})
}

// Logout always ends in LoggedOut; storage errors are only logged.
func (c *Controller) Logout(ctx context.Context) UiStatus {
	if !c.begin() {
		return UiStatus{Text: MsgActionInProgress, Kind: StatusInfo}
	}
	defer c.end()

	if err := c.auth.Logout(ctx); err != nil {
		c.logger.Warn(ctx, "could not clear session storage", "error", err)
	} else {
		c.logger.Info(ctx, "session credential and user id removed")
	}

	c.setState(LoggedOut)
	return c.setStatus(UiStatus{Text: MsgLoggedOut, Kind: StatusInfo})
}

// Capture sends the active page to the knowledge base. Only a store that no
// longer holds a session (drift) changes the login state; remote outcomes never do.
func (c *Controller) Capture(ctx context.Context) UiStatus {
	if !c.begin() {
		return UiStatus{Text: MsgActionInProgress, Kind: StatusInfo}
	}
	defer c.end()

	c.setStatus(UiStatus{})

	if !c.IsLoggedIn() {
		return c.setStatus(UiStatus{Text: MsgMustBeLoggedIn, Kind: StatusError})
	}

	s, ok := c.auth.CurrentSession(ctx)
	if !ok {
		c.logger.Warn(ctx, "session store disagrees with login state, logging out")
		c.setState(LoggedOut)
		return c.setStatus(UiStatus{Text: MsgMustBeLoggedIn, Kind: StatusError})
	}

	record, _, err := c.capture.CaptureActivePage(ctx, s)
	if err != nil {
		c.logger.Error(ctx, "add to knowledge base failed", "url", record.URL, "error", err)
		return c.setStatus(UiStatus{Text: captureFailureText(err), Kind: StatusError})
	}

	c.logger.Info(ctx, "page added to knowledge base", "url", record.URL)
	return c.setStatus(UiStatus{Text: MsgPageAdded, Kind: StatusSuccess})
}

func loginFailureText(err error) string {
	if errors.Is(err, client.ErrVerificationFailed) {
		return client.Reason(err, MsgLoginFailed)
	}
	if session.IsAbsent(err) {
		return MsgSessionNotSaved
	}
	return MsgLoginFailed
}

func captureFailureText(err error) string {
	switch {
	case errors.Is(err, browser.ErrUnsupportedURL):
		return MsgInvalidURL
	case errors.Is(err, browser.ErrNoActiveTab):
		return MsgNoActiveTab
	case errors.Is(err, browser.ErrTabsUnavailable):
		return MsgTabsUnavailable
	default:
		return client.Reason(err, MsgAddFailed)
	}
}

func (c *Controller) begin() bool {
	if !c.busy.CompareAndSwap(false, true) {
		return false
	}
	c.notify()
	return true
}

func (c *Controller) end() {
	c.busy.Store(false)
	c.notify()
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) setStatus(st UiStatus) UiStatus {
	c.mu.Lock()
	c.status = st
	c.mu.Unlock()
	c.notify()
	return st
}

func (c *Controller) notify() {
	c.mu.Lock()
	v := c.viewLocked()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}
