package services

import (
	"context"

	"github.com/dmitrijs2005/kbclip/internal/client/browser"
	"github.com/dmitrijs2005/kbclip/internal/client/client"
	"github.com/dmitrijs2005/kbclip/internal/client/models"
	"github.com/dmitrijs2005/kbclip/internal/client/session"
)

// TabResolver is satisfied by *browser.Resolver.
type TabResolver interface {
	ResolveActiveTab(ctx context.Context) (browser.Tab, error)
}

// CaptureService sends the active page to the knowledge base on behalf of
// the session owner.
type CaptureService interface {
	CaptureActivePage(ctx context.Context, s session.Session) (models.CaptureRecord, models.Ack, error)
}

type captureService struct {
	tabs      TabResolver
	submitter client.Submitter
}

func NewCaptureService(tabs TabResolver, submitter client.Submitter) CaptureService {
	return &captureService{tabs: tabs, submitter: submitter}
}

// CaptureActivePage resolves the active tab and submits it. Resolver errors
// (browser.ErrNoActiveTab, browser.ErrUnsupportedURL, browser.ErrTabsUnavailable)
// stop the flow before any remote call.
func (c *captureService) CaptureActivePage(ctx context.Context, s session.Session) (models.CaptureRecord, models.Ack, error) {
	if c.tabs == nil {
		return models.CaptureRecord{}, models.Ack{}, browser.ErrTabsUnavailable
	}

	tab, err := c.tabs.ResolveActiveTab(ctx)
	if err != nil {
		return models.CaptureRecord{}, models.Ack{}, err
	}

	record := models.NewCaptureRecord(tab.URL, tab.Title, s.UserID)
	ack, err := c.submitter.Submit(ctx, record, s.Credential)
	if err != nil {
		return record, models.Ack{}, err
	}
	return record, ack, nil
}
