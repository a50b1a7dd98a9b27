package blastengine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/blastengine/pkg/redact"
)

// MaxRecipientsPerUpdate is the API-side cap on recipients accepted by a
// single bulk-update call. UpdateBulk chunks larger lists transparently.
const MaxRecipientsPerUpdate = 50

// retryStatuses is the fixed whitelist of retryable response codes.
var retryStatuses = map[int]struct{}{
	http.StatusRequestTimeout:  {}, // 408
	http.StatusTooEarly:        {}, // 425
	http.StatusTooManyRequests: {}, // 429
	500:                        {},
	502:                        {},
	503:                        {},
	504:                        {},
}

// Address is a named email address on the wire.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Payload is the JSON document both delivery endpoints consume.
// Transactional sends address a single recipient in To (the API takes a bare
// string there); bulk deliveries carry recipients via UpdateBulk instead.
type Payload struct {
	Subject       string            `json:"subject"`
	From          Address           `json:"from"`
	To            string            `json:"to,omitempty"`
	CC            []string          `json:"cc,omitempty"`
	BCC           []string          `json:"bcc,omitempty"`
	TextPart      string            `json:"text_part,omitempty"`
	HTMLPart      string            `json:"html_part,omitempty"`
	Encode        string            `json:"encode,omitempty"`
	CustomHeaders map[string]string `json:"custom_headers,omitempty"`
}

// Attachment is a file carried in a multipart request.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Client is an immutable Blastengine API client. The bearer token is derived
// once in New and reused for every call; the client is safe for sequential
// reuse across deliveries. Calls are synchronous with no internal
// parallelism.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
	sleep      func(time.Duration)
	token      string
	cfg        Config
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSleep replaces the backoff sleep function. Tests inject a recorder
// here instead of waiting out real delays.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// New creates a Client and derives the bearer token from the credential pair.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:   cfg,
		token: DeriveToken(cfg.LoginID, cfg.APIKey),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DeriveToken computes the bearer token Blastengine expects: the lowercase
// hex SHA-256 digest of loginID+apiKey, base64-encoded. Deterministic and
// order-sensitive in its inputs.
func DeriveToken(loginID, apiKey string) string {
	sum := sha256.Sum256([]byte(loginID + apiKey))
	digest := hex.EncodeToString(sum[:])
	return base64.StdEncoding.EncodeToString([]byte(digest))
}

// SendTransactional submits a single immediate delivery and returns its
// delivery handle. The body is JSON when attachments is empty, multipart
// otherwise.
func (c *Client) SendTransactional(ctx context.Context, p Payload, attachments []Attachment) (string, error) {
	resp, err := c.submit(ctx, http.MethodPost, "/deliveries/transaction", p, attachments)
	if err != nil {
		return "", err
	}
	return extractDeliveryID(resp)
}

// CreateBulk begins a bulk delivery and returns the handle that the
// subsequent UpdateBulk and CommitBulk calls must thread through.
func (c *Client) CreateBulk(ctx context.Context, p Payload, attachments []Attachment) (string, error) {
	resp, err := c.submit(ctx, http.MethodPost, "/deliveries/bulk/begin", p, attachments)
	if err != nil {
		return "", err
	}
	return extractDeliveryID(resp)
}

// UpdateBulk registers recipients on a pending bulk delivery. The API caps a
// single update at MaxRecipientsPerUpdate addresses, so larger lists are
// sent as consecutive chunked calls in input order.
func (c *Client) UpdateBulk(ctx context.Context, deliveryID string, recipients []string) error {
	for len(recipients) > 0 {
		n := min(len(recipients), MaxRecipientsPerUpdate)
		chunk := make([]Address, n)
		for i, email := range recipients[:n] {
			chunk[i] = Address{Email: email}
		}
		recipients = recipients[n:]

		body, err := json.Marshal(map[string][]Address{"to": chunk})
		if err != nil {
			return fmt.Errorf("blastengine: encode update payload: %w", err)
		}
		if _, err := c.do(ctx, http.MethodPut, "/deliveries/bulk/update/"+deliveryID, "application/json", body); err != nil {
			return err
		}
	}
	return nil
}

// AppendRecipients adds addresses to a pending delivery one call per
// address. The endpoint has no batch form; use UpdateBulk for anything
// beyond small lists.
func (c *Client) AppendRecipients(ctx context.Context, deliveryID string, recipients []string) error {
	for _, email := range recipients {
		body, err := json.Marshal(Address{Email: email})
		if err != nil {
			return fmt.Errorf("blastengine: encode recipient: %w", err)
		}
		if _, err := c.do(ctx, http.MethodPost, "/deliveries/"+deliveryID+"/emails", "application/json", body); err != nil {
			return err
		}
	}
	return nil
}

// CommitBulk finalizes a bulk delivery. With scheduleAt set the delivery is
// reserved for that time (UTC); otherwise it is committed for immediate
// sending via the distinct immediate endpoint.
func (c *Client) CommitBulk(ctx context.Context, deliveryID string, scheduleAt *time.Time) (string, error) {
	var (
		resp *apiResponse
		err  error
	)
	if scheduleAt != nil {
		body, merr := json.Marshal(map[string]string{
			"reservation_time": scheduleAt.UTC().Format(time.RFC3339),
		})
		if merr != nil {
			return "", fmt.Errorf("blastengine: encode commit payload: %w", merr)
		}
		resp, err = c.do(ctx, http.MethodPatch, "/deliveries/bulk/commit/"+deliveryID, "application/json", body)
	} else {
		resp, err = c.do(ctx, http.MethodPatch, "/deliveries/bulk/commit/"+deliveryID+"/immediate", "", nil)
	}
	if err != nil {
		return "", err
	}
	return extractDeliveryID(resp)
}

// submit dispatches a delivery payload, choosing JSON or multipart encoding
// based on the presence of attachments.
func (c *Client) submit(ctx context.Context, method, path string, p Payload, attachments []Attachment) (*apiResponse, error) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("blastengine: encode payload: %w", err)
	}

	if len(attachments) == 0 {
		return c.do(ctx, method, path, "application/json", encoded)
	}

	contentType, body, err := buildMultipart(encoded, attachments)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, method, path, contentType, body)
}

type apiResponse struct {
	body   []byte
	status int
}

// do performs one API call with the retry policy applied. The request body
// is pre-encoded so each attempt replays identical bytes.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*apiResponse, error) {
	url := c.cfg.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &APIError{kind: ErrTransport, Message: redact.Error(err)}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("blastengine: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.cfg.MaxRetries {
				c.sleep(backoff(attempt))
				continue
			}
			return nil, &APIError{kind: ErrTransport, Message: redact.Error(err)}
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			if attempt < c.cfg.MaxRetries {
				c.sleep(backoff(attempt))
				continue
			}
			return nil, &APIError{kind: ErrTransport, Message: redact.Error(readErr)}
		}

		if _, retryable := retryStatuses[resp.StatusCode]; retryable && attempt < c.cfg.MaxRetries {
			c.log.DebugContext(ctx, "retrying request",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt+1),
			)
			c.sleep(backoff(attempt))
			continue
		}

		if resp.StatusCode >= 400 {
			return nil, c.classifyError(ctx, method, path, resp.StatusCode, respBody)
		}

		return &apiResponse{status: resp.StatusCode, body: respBody}, nil
	}

	return nil, &APIError{kind: ErrTransport, Message: redact.Error(lastErr)}
}

// classifyError turns an error response into an *APIError with extracted,
// sanitized detail. Retry-whitelisted statuses only reach here with retries
// exhausted, so they classify as unavailable rather than rejected.
func (c *Client) classifyError(ctx context.Context, method, path string, status int, body []byte) error {
	kind := ErrRejected
	if _, retryable := retryStatuses[status]; retryable {
		kind = ErrUnavailable
	}

	message := extractErrorMessage(status, body)
	sanitizedBody := redact.Sanitize(string(body))

	c.log.ErrorContext(ctx, "api request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("message", message),
		slog.String("body", sanitizedBody),
	)

	return &APIError{
		kind:       kind,
		StatusCode: status,
		Message:    message,
		Body:       sanitizedBody,
	}
}

// backoff returns the delay before retrying after the given zero-based
// attempt: 1s, 2s, 4s, doubling without jitter or cap.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}
