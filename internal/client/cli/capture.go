package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kbclip/internal/client/services"
)

// Capture adds the active page to the knowledge base.
func (a *App) Capture(ctx context.Context) error {
	printlnFn("Adding page...")
	a.rejected(a.controller.Capture(ctx))
	return nil
}

// Status prints the login state and the last status line.
func (a *App) Status(ctx context.Context) error {
	v := a.controller.View()
	printlnFn("State:", v.State.String())
	if v.Status.Kind != services.StatusNone {
		printStatus(v.Status)
	}
	return nil
}

// render prints the status line once an action has finished.
func (a *App) render(v services.View) {
	a.mu.Lock()
	finished := a.busy && !v.InProgress
	a.busy = v.InProgress
	a.mu.Unlock()

	if finished {
		printStatus(v.Status)
	}
}

// rejected prints the status of an action the controller refused to start.
// Actions that did run are printed by render.
func (a *App) rejected(st services.UiStatus) {
	if st.Text == services.MsgActionInProgress {
		printStatus(st)
	}
}

var statusPrefix = map[services.StatusKind]string{
	services.StatusSuccess: "[ok]",
	services.StatusError:   "[error]",
	services.StatusInfo:    "[info]",
}

// printStatus renders a status line; an empty status prints nothing.
func printStatus(st services.UiStatus) {
	if st.Kind == services.StatusNone && st.Text == "" {
		return
	}
	if p, ok := statusPrefix[st.Kind]; ok {
		printlnFn(fmt.Sprintf("%s %s", p, st.Text))
		return
	}
	printlnFn(st.Text)
}
