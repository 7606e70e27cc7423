package browser

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

const focusProbe = `() => ({ visible: document.visibilityState === "visible", focused: document.hasFocus() })`

// PlaywrightQuerier reads tabs from a running Chromium over the DevTools
// protocol (start the browser with --remote-debugging-port). The connection
// is opened on first use and kept until Close.
type PlaywrightQuerier struct {
	endpoint string

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywrightQuerier(endpoint string) *PlaywrightQuerier {
	return &PlaywrightQuerier{endpoint: endpoint}
}

func (q *PlaywrightQuerier) connect() error {
	if q.browser != nil && q.browser.IsConnected() {
		return nil
	}

	if q.pw == nil {
		pw, err := playwright.Run(&playwright.RunOptions{Verbose: false, Stdout: io.Discard, Stderr: io.Discard})
		if err != nil {
			return fmt.Errorf("failed to start playwright: %w", err)
		}
		q.pw = pw
	}

	b, err := q.pw.Chromium.ConnectOverCDP(q.endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to browser at %s: %w", q.endpoint, err)
	}
	q.browser = b
	return nil
}

type pageState struct {
	tab     Tab
	visible bool
	focused bool
}

// QueryActiveTabs returns focused pages first, then merely visible ones.
func (q *PlaywrightQuerier) QueryActiveTabs(ctx context.Context) ([]Tab, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.connect(); err != nil {
		return nil, err
	}

	var states []pageState
	for _, bctx := range q.browser.Contexts() {
		for _, page := range bctx.Pages() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			title, _ := page.Title()
			st := pageState{tab: Tab{URL: page.URL(), Title: title}}

			res, err := page.Evaluate(focusProbe)
			if err == nil {
				if m, ok := res.(map[string]interface{}); ok {
					st.visible, _ = m["visible"].(bool)
					st.focused, _ = m["focused"].(bool)
				}
			}
			states = append(states, st)
		}
	}

	return pickActive(states), nil
}

func pickActive(states []pageState) []Tab {
	var focused, visible []Tab
	for _, st := range states {
		switch {
		case st.focused && st.visible:
			focused = append(focused, st.tab)
		case st.visible:
			visible = append(visible, st.tab)
		}
	}
	return append(focused, visible...)
}

func (q *PlaywrightQuerier) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.browser != nil {
		// Closing a CDP-attached browser only detaches; the user's browser keeps running.
		_ = q.browser.Close()
		q.browser = nil
	}
	if q.pw != nil {
		err := q.pw.Stop()
		q.pw = nil
		return err
	}
	return nil
}
