// Package remote implements the remote snippet store over HTTP.
//
// The remote holds one document per snippet: a wire item pairs the
// snippet ID with its serialized JSON payload. Fetch and push always
// move the whole collection, mirroring the engine's whole-state sync
// model.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

const snippetsPath = "/v1/snippets"

// wireItem is one snippet on the wire. Payload carries the snippet's
// own JSON document so the remote never needs to understand version
// ledgers.
type wireItem struct {
	ID      string `json:"id"`
	Payload string `json:"payload"`
}

type wireEnvelope struct {
	Items []wireItem `json:"items"`
}

// Client talks to a remote snippet store.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAuthToken sets the bearer token sent with every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a remote store client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll downloads the full collection. Items whose payload does
// not parse as a snippet are skipped with a log line rather than
// failing the fetch.
func (c *Client) FetchAll(ctx context.Context) (domain.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+snippetsPath, nil)
	if err != nil {
		return nil, domain.ErrRemoteUnavailable.WithDetails("create request").WithCause(err)
	}
	c.addHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.ErrRemoteUnavailable.WithDetails("fetch collection").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrRemoteUnavailable.WithDetails(
			fmt.Sprintf("fetch collection: status %d", resp.StatusCode))
	}

	var env wireEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, domain.ErrMalformedData.WithDetails("decode remote envelope").WithCause(err)
	}

	collection := domain.NewCollection()
	for _, item := range env.Items {
		var s domain.Snippet
		if err := json.Unmarshal([]byte(item.Payload), &s); err != nil {
			c.logger.Warn("skipping unparseable remote snippet", "id", item.ID, "error", err)
			continue
		}
		if s.ID == "" {
			s.ID = item.ID
		}
		if err := s.Validate(); err != nil {
			c.logger.Warn("skipping invalid remote snippet", "id", item.ID, "error", err)
			continue
		}
		collection[s.ID] = &s
	}
	return collection, nil
}

// PushAll uploads the full collection, replacing the remote state.
func (c *Client) PushAll(ctx context.Context, collection domain.Collection) error {
	env := wireEnvelope{Items: make([]wireItem, 0, len(collection))}
	for id, s := range collection {
		payload, err := json.Marshal(s)
		if err != nil {
			return domain.ErrMalformedData.WithDetails("encode snippet " + id).WithCause(err)
		}
		env.Items = append(env.Items, wireItem{ID: id, Payload: string(payload)})
	}

	body, err := json.Marshal(env)
	if err != nil {
		return domain.ErrMalformedData.WithDetails("encode envelope").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+snippetsPath, bytes.NewReader(body))
	if err != nil {
		return domain.ErrRemoteWriteFailed.WithDetails("create request").WithCause(err)
	}
	c.addHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ErrRemoteWriteFailed.WithDetails("push collection").WithCause(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return domain.ErrRemoteWriteFailed.WithDetails(
			fmt.Sprintf("push collection: status %d", resp.StatusCode))
	}
	return nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) addHeaders(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	req.Header.Set("User-Agent", "snipsync/1.0")
}
