// Package twilio provides a minimal client for the Twilio Programmable
// Messaging REST API.
//
// Only message creation is implemented. Requests are form-encoded, responses
// are JSON. The same endpoint serves SMS and WhatsApp; WhatsApp addresses carry
// a "whatsapp:" prefix.
package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Twilio REST endpoint.
const DefaultBaseURL = "https://api.twilio.com/2010-04-01"

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when the account SID or auth token is empty.
var ErrNotConfigured = errors.New("twilio: credentials not configured")

// APIError is the error document Twilio returns with non-2xx responses.
type APIError struct {
	Status   int    `json:"status"`    // HTTP status code
	Code     int    `json:"code"`      // Twilio error code
	Message  string `json:"message"`   // human readable reason
	MoreInfo string `json:"more_info"` // documentation link
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("twilio: %s (code %d, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("twilio: %s (status %d)", e.Message, e.Status)
}

// Client sends messages through one Twilio account.
type Client struct {
	accountSID string       // account identifier
	authToken  string       // auth secret
	baseURL    string       // API root, overridable for tests
	client     *http.Client // HTTP client used to make requests
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewClient creates a Client for the given account credentials.
func NewClient(accountSID, authToken string, opts ...Option) *Client {
	c := &Client{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    DefaultBaseURL,
		client:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c != nil && c.accountSID != "" && c.authToken != ""
}

// messageResponse is the subset of the Message resource we read back.
type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// CreateMessage submits one message and returns the provider message SID.
func (c *Client) CreateMessage(ctx context.Context, from, to, body string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, url.PathEscape(c.accountSID))

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return "", apiErr
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if msg.SID == "" {
		return "", errors.New("twilio: response carried no message sid")
	}

	return msg.SID, nil
}
