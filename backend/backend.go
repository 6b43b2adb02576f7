// Package backend implements the HTTP adapter for the remote SmartReply
// service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/smartreplyhq/smartreply"
)

const maxBodyBytes = 64 << 10

// Client talks to the SmartReply API. It is purely a network boundary
// adapter: it never mutates quota state, performs no retries, and maps
// every result of a generation attempt to exactly one outcome.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

var _ smartreply.Generator = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Client) { p.httpClient = c }
}

// WithTimeout sets the per-attempt deadline.
func WithTimeout(d time.Duration) Option {
	return func(p *Client) { p.timeout = d }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    smartreply.DefaultTimeoutMS * time.Millisecond,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generateResponse is the wire shape of a generation response. Older
// backend revisions used different reply field names; all are accepted.
type generateResponse struct {
	Success        *bool  `json:"success"`
	Reply          string `json:"reply"`
	GeneratedReply string `json:"generatedReply"`
	Response       string `json:"response"`

	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
	Status  string `json:"status"`

	CurrentUsage      *int  `json:"currentUsage"`
	RemainingCalls    *int  `json:"remainingCalls"`
	MaxCalls          *int  `json:"maxCalls"`
	CanMakeCall       *bool `json:"canMakeCall"`
	RetryAfterSeconds *int  `json:"retryAfterSeconds"`
}

func (r generateResponse) replyText() string {
	for _, s := range []string{r.Reply, r.GeneratedReply, r.Response} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func (r generateResponse) failureMessage() string {
	for _, s := range []string{r.Message, r.Error, r.Details} {
		if s != "" {
			return s
		}
	}
	return "request rejected by server"
}

// quota returns the server-reported quota view, or nil when the response
// carried no quota fields.
func (r generateResponse) quota() *smartreply.QuotaView {
	if r.CurrentUsage == nil && r.RemainingCalls == nil {
		return nil
	}

	maxCalls := smartreply.DefaultMaxCalls
	if r.MaxCalls != nil {
		maxCalls = *r.MaxCalls
	}

	var used int
	switch {
	case r.CurrentUsage != nil:
		used = *r.CurrentUsage
	case r.RemainingCalls != nil:
		used = maxCalls - *r.RemainingCalls
	}
	if used < 0 {
		used = 0
	}

	remaining := maxCalls - used
	if r.RemainingCalls != nil {
		remaining = *r.RemainingCalls
	}
	if remaining < 0 {
		remaining = 0
	}

	can := remaining > 0
	if r.CanMakeCall != nil {
		can = *r.CanMakeCall
	}

	return &smartreply.QuotaView{
		Used:        used,
		Remaining:   remaining,
		MaxCalls:    maxCalls,
		CanMakeCall: can,
	}
}

// coldStart reports whether the body signals a backend that is still
// waking up. Only consulted when no reply text is present.
func (r generateResponse) coldStart() bool {
	for _, s := range []string{r.Status, r.Message, r.Error} {
		s = strings.ToLower(s)
		for _, hint := range []string{"starting", "sleeping", "waking", "warming"} {
			if strings.Contains(s, hint) {
				return true
			}
		}
	}
	return false
}

// GenerateReply performs one generation attempt against the service. The
// attempt is bounded by the configured deadline; cancellation aborts the
// in-flight call and is reported as OutcomeTransportTimeout.
func (c *Client) GenerateReply(ctx context.Context, req smartreply.ReplyRequest) smartreply.Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return smartreply.Outcome{Kind: smartreply.OutcomeUnknownFailure, Message: "encode request: " + err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email/generate-reply", bytes.NewReader(body))
	if err != nil {
		return smartreply.Outcome{Kind: smartreply.OutcomeUnknownFailure, Message: "create request: " + err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return smartreply.Outcome{Kind: smartreply.OutcomeTransportTimeout}
		}
		return smartreply.Outcome{Kind: smartreply.OutcomeUnknownFailure, Message: err.Error()}
	}
	defer resp.Body.Close()

	return classify(resp)
}

func classify(resp *http.Response) smartreply.Outcome {
	// Read body for classification context, but don't fail if we can't.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	var parsed generateResponse
	_ = json.Unmarshal(body, &parsed)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return smartreply.Outcome{
			Kind:        smartreply.OutcomeQuotaExceeded,
			ResetHint:   resetHint(resp.Header, parsed),
			ServerQuota: parsed.quota(),
		}
	case resp.StatusCode == http.StatusBadGateway, resp.StatusCode == http.StatusServiceUnavailable:
		return smartreply.Outcome{Kind: smartreply.OutcomeServerUnavailable}
	case resp.StatusCode >= 500:
		return smartreply.Outcome{Kind: smartreply.OutcomeServerUnavailable}
	case resp.StatusCode >= 400:
		return smartreply.Outcome{Kind: smartreply.OutcomeServerRejected, Message: parsed.failureMessage()}
	}

	text := parsed.replyText()
	if text == "" {
		if parsed.coldStart() {
			return smartreply.Outcome{Kind: smartreply.OutcomeServerUnavailable}
		}
		return smartreply.Outcome{Kind: smartreply.OutcomeUnknownFailure, Message: "response carried no reply"}
	}

	return smartreply.Outcome{
		Kind:        smartreply.OutcomeSuccess,
		Text:        text,
		ServerQuota: parsed.quota(),
	}
}

func resetHint(header http.Header, parsed generateResponse) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		if t, err := http.ParseTime(v); err == nil {
			if d := time.Until(t); d > 0 {
				return d
			}
		}
	}
	if parsed.RetryAfterSeconds != nil && *parsed.RetryAfterSeconds > 0 {
		return time.Duration(*parsed.RetryAfterSeconds) * time.Second
	}
	return 0
}

// CheckUsage fetches the server-reported quota state.
func (c *Client) CheckUsage(ctx context.Context) (smartreply.QuotaView, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate-limit/check", nil)
	if err != nil {
		return smartreply.QuotaView{}, fmt.Errorf("smartreply: create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return smartreply.QuotaView{}, fmt.Errorf("smartreply: usage check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return smartreply.QuotaView{}, fmt.Errorf("smartreply: usage check: unexpected status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&parsed); err != nil {
		return smartreply.QuotaView{}, fmt.Errorf("smartreply: decode usage: %w", err)
	}

	q := parsed.quota()
	if q == nil {
		return smartreply.QuotaView{}, fmt.Errorf("smartreply: usage check: response carried no quota fields")
	}
	return *q, nil
}

// Health pings the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/email/health", nil)
	if err != nil {
		return fmt.Errorf("smartreply: create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("smartreply: health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("smartreply: health check: unexpected status %d", resp.StatusCode)
	}
	return nil
}
