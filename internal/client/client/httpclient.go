package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/client/models"
	"github.com/dmitrijs2005/kbclip/internal/client/session"
	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/logging"
)

const maxResponseBody = 1 << 20

// DefaultTimeout bounds each remote call when no WithTimeout option is given.
const DefaultTimeout = 15 * time.Second

// HTTPClient implements Client over JSON/HTTP. Every call is a single
// attempt bounded by the configured timeout.
type HTTPClient struct {
	verifyURL  string
	captureURL string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     logging.Logger
}

type Option func(*HTTPClient)

// WithAPIKey sets the public project key sent as the "apikey" header on captures.
func WithAPIKey(key string) Option {
	return func(c *HTTPClient) { c.apiKey = key }
}

// WithTimeout bounds every remote call; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func NewHTTPClient(verifyURL, captureURL string, logger logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		verifyURL:  verifyURL,
		captureURL: captureURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     logger.With("module", "http_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Success           bool   `json:"success"`
	UserID            string `json:"userId"`
	SessionCredential string `json:"sessionCredential"`
	// SupabaseToken is the credential field name used by early backends.
	SupabaseToken string `json:"supabaseToken"`
	Message       string `json:"message"`
}

type captureResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Verify sends the token to the verification endpoint. Success requires both
// a user id and a session credential in the response.
func (c *HTTPClient) Verify(ctx context.Context, token string) (session.Session, error) {
	fail := func(reason string, err error) (session.Session, error) {
		c.logger.Warn(ctx, "token verification failed", "reason", reason, "error", err)
		return session.Session{}, &Failure{Kind: ErrVerificationFailed, Reason: reason, Err: err}
	}

	status, body, err := c.postJSON(ctx, c.verifyURL, verifyRequest{Token: token}, nil)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			return fail("Request timed out.", err)
		}
		return fail("Verification service unavailable.", err)
	}

	var resp verifyResponse
	decodeErr := json.Unmarshal(body, &resp)

	if status < 200 || status > 299 {
		reason := resp.Message
		if reason == "" {
			reason = fmt.Sprintf("Token verification failed (HTTP %d).", status)
		}
		return fail(reason, statusError(status))
	}
	if decodeErr != nil {
		return fail("Token verification failed. Please try again.", fmt.Errorf("decode verify response: %w", decodeErr))
	}
	if !resp.Success {
		reason := resp.Message
		if reason == "" {
			reason = "Token verification failed. Please try again."
		}
		return fail(reason, nil)
	}

	credential := resp.SessionCredential
	if credential == "" {
		credential = resp.SupabaseToken
	}
	s := session.Session{Credential: credential, UserID: resp.UserID}
	if !s.Valid() {
		return fail("Token verification failed. Please try again.", errors.New("response is missing userId or sessionCredential"))
	}

	c.logger.Debug(ctx, "token verified", "user_id", s.UserID)
	return s, nil
}

// Submit posts the record to the storage endpoint, authorised by credential.
func (c *HTTPClient) Submit(ctx context.Context, record models.CaptureRecord, credential string) (models.Ack, error) {
	fail := func(reason string, err error) (models.Ack, error) {
		c.logger.Warn(ctx, "capture failed", "url", record.URL, "reason", reason, "error", err)
		return models.Ack{}, &Failure{Kind: ErrCaptureFailed, Reason: reason, Err: err}
	}

	if credential == "" {
		return fail("Authentication token not provided for KB addition.", ErrUnauthorized)
	}

	headers := map[string]string{
		common.AuthorizationHeaderName: common.BearerPrefix + credential,
		common.PreferHeaderName:        common.PreferReturnMinimal,
	}
	if c.apiKey != "" {
		headers[common.APIKeyHeaderName] = c.apiKey
	}

	status, body, err := c.postJSON(ctx, c.captureURL, record, headers)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			return fail("Request timed out.", err)
		}
		return fail("Knowledge base service unavailable.", err)
	}

	var resp captureResponse
	// PostgREST answers 201 with an empty body (or the inserted rows); only an
	// explicit {"success": false} is treated as a refusal on 2xx.
	_ = json.Unmarshal(body, &resp)

	if status < 200 || status > 299 {
		reason := resp.Message
		if reason == "" {
			reason = fmt.Sprintf("Failed to add page (HTTP %d).", status)
		}
		return fail(reason, statusError(status))
	}
	if resp.Success != nil && !*resp.Success {
		reason := resp.Message
		if reason == "" {
			reason = "Failed to add to Knowledge Base."
		}
		return fail(reason, nil)
	}

	c.logger.Debug(ctx, "page captured", "url", record.URL)
	return models.Ack{Message: resp.Message}, nil
}

// postJSON sends body as JSON and returns the status code and (bounded) response body.
// Transport failures are wrapped in ErrUnavailable, deadline expiry in ErrTimeout.
func (c *HTTPClient) postJSON(ctx context.Context, url string, body any, headers map[string]string) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return 0, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return 0, nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	return resp.StatusCode, bytes.TrimSpace(b), nil
}

func statusError(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d: %s", status, strings.ToLower(http.StatusText(status)))
	}
}
