// Package browser resolves the page the user is looking at.
//
// The host facility is abstracted as a TabQuerier; Resolver applies the
// capture rules on top of it (exactly one active tab, capturable scheme).
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNoActiveTab     = errors.New("no active tab")
	ErrUnsupportedURL  = errors.New("unsupported url")
	ErrTabsUnavailable = errors.New("tab query facility unavailable")
)

// Tab is the part of a browser tab the capture flow uses.
type Tab struct {
	URL   string
	Title string
}

// TabQuerier returns the tabs that are active in the focused window.
// Implementations return them most-relevant first.
type TabQuerier interface {
	QueryActiveTabs(ctx context.Context) ([]Tab, error)
}

// blockedSchemes have no capturable content: browser UI pages and
// non-web documents.
var blockedSchemes = map[string]struct{}{
	"about":            {},
	"blob":             {},
	"brave":            {},
	"chrome":           {},
	"chrome-extension": {},
	"chrome-search":    {},
	"chrome-untrusted": {},
	"data":             {},
	"devtools":         {},
	"edge":             {},
	"javascript":       {},
	"moz-extension":    {},
	"opera":            {},
	"view-source":      {},
	"vivaldi":          {},
}

// IsCapturable reports whether a page at rawURL can be sent to the knowledge base.
func IsCapturable(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return false
	}
	_, blocked := blockedSchemes[strings.ToLower(u.Scheme)]
	return !blocked
}

type Resolver struct {
	querier TabQuerier
}

func NewResolver(q TabQuerier) *Resolver {
	return &Resolver{querier: q}
}

// ResolveActiveTab returns the first active tab of the focused window.
// Errors: ErrTabsUnavailable, ErrNoActiveTab, ErrUnsupportedURL.
func (r *Resolver) ResolveActiveTab(ctx context.Context) (Tab, error) {
	if r.querier == nil {
		return Tab{}, ErrTabsUnavailable
	}

	tabs, err := r.querier.QueryActiveTabs(ctx)
	if err != nil {
		return Tab{}, fmt.Errorf("%w: %w", ErrTabsUnavailable, err)
	}
	if len(tabs) == 0 {
		return Tab{}, ErrNoActiveTab
	}

	tab := tabs[0]
	if !IsCapturable(tab.URL) {
		return Tab{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, tab.URL)
	}
	return tab, nil
}
