package client

import (
	"context"

	"github.com/dmitrijs2005/kbclip/internal/client/models"
	"github.com/dmitrijs2005/kbclip/internal/client/session"
)

// Verifier exchanges a one-time login token for a durable Session.
type Verifier interface {
	Verify(ctx context.Context, token string) (session.Session, error)
}

// Submitter sends one capture record to the knowledge-base storage service.
type Submitter interface {
	Submit(ctx context.Context, record models.CaptureRecord, credential string) (models.Ack, error)
}
