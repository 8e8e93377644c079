package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Config holds HTTP client settings for the provider.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	MaxTries uint
}

// HTTPClient implements Client against a Graph-style REST API.
type HTTPClient struct {
	config       Config
	client       *http.Client
	logger       *zap.Logger
	retryInitial time.Duration
}

// NewHTTPClient creates a provider client with bounded timeouts.
func NewHTTPClient(cfg Config, logger *zap.Logger) *HTTPClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://graph.microsoft.com/v1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 4
	}
	return &HTTPClient{
		config:       cfg,
		client:       &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
		retryInitial: 500 * time.Millisecond,
	}
}

// ListMessages fetches mailbox items with optional sort, filter and top.
func (c *HTTPClient) ListMessages(ctx context.Context, token string, opts ListMessagesOptions) ([]Message, error) {
	q := url.Values{}
	if opts.OrderBy != "" {
		q.Set("$orderby", opts.OrderBy+" desc")
	}
	if opts.Filter != "" {
		q.Set("$filter", opts.Filter)
	}
	if opts.Top > 0 {
		q.Set("$top", strconv.Itoa(opts.Top))
	}

	var out struct {
		Value []Message `json:"value"`
	}
	if err := c.do(ctx, token, http.MethodGet, c.endpoint("/me/messages", q), nil, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// ReplyToMessage posts a reply comment on an existing message.
func (c *HTTPClient) ReplyToMessage(ctx context.Context, token, messageID, comment string) error {
	body := map[string]string{"comment": comment}
	path := "/me/messages/" + url.PathEscape(messageID) + "/reply"
	return c.do(ctx, token, http.MethodPost, c.endpoint(path, nil), body, nil)
}

// CreateEvent adds a calendar event.
func (c *HTTPClient) CreateEvent(ctx context.Context, token string, ev Event) error {
	return c.do(ctx, token, http.MethodPost, c.endpoint("/me/events", nil), ev, nil)
}

// ListEvents fetches calendar items with optional filter and top.
func (c *HTTPClient) ListEvents(ctx context.Context, token string, opts ListEventsOptions) ([]Event, error) {
	q := url.Values{}
	if opts.Filter != "" {
		q.Set("$filter", opts.Filter)
	}
	if opts.Top > 0 {
		q.Set("$top", strconv.Itoa(opts.Top))
	}

	var out struct {
		Value []Event `json:"value"`
	}
	if err := c.do(ctx, token, http.MethodGet, c.endpoint("/me/events", q), nil, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// CalendarView fetches events within a time window.
func (c *HTTPClient) CalendarView(ctx context.Context, token string, start, end time.Time, top int) ([]Event, error) {
	q := url.Values{}
	q.Set("startDateTime", start.UTC().Format(time.RFC3339))
	q.Set("endDateTime", end.UTC().Format(time.RFC3339))
	if top > 0 {
		q.Set("$top", strconv.Itoa(top))
	}

	var out struct {
		Value []Event `json:"value"`
	}
	if err := c.do(ctx, token, http.MethodGet, c.endpoint("/me/calendarView", q), nil, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

func (c *HTTPClient) endpoint(path string, q url.Values) string {
	u := c.config.Endpoint + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// do issues one provider request under the uniform transport retry policy:
// exponential backoff up to MaxTries, applied identically to every operation.
// 4xx responses are permanent failures and never retried.
func (c *HTTPClient) do(ctx context.Context, token, method, u string, body, out interface{}) error {
	operation := func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("marshal request: %w", err))
			}
			reader = bytes.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("send request: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusBadRequest {
			err := fmt.Errorf("provider error %d: %s", resp.StatusCode, string(respBody))
			if resp.StatusCode < http.StatusInternalServerError {
				return nil, backoff.Permanent(err)
			}
			c.logger.Warn("provider request failed, retrying",
				zap.String("method", method),
				zap.Int("status", resp.StatusCode))
			return nil, err
		}
		return respBody, nil
	}

	respBody, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newExponential()),
		backoff.WithMaxTries(c.config.MaxTries),
	)
	if err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) newExponential() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitial
	return bo
}
