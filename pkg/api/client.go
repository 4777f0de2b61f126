// Package api is the HTTP client for the burgero backend. It decodes the
// backend's {success, message, data} envelope, attaches the bearer token
// supplied by an injected TokenProvider and retries transient failures with
// exponential backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenProvider supplies the current bearer token, or "" when the caller is
// unauthenticated (public endpoints).
type TokenProvider func() string

type Client struct {
	BaseURL       string
	HTTPClient    *http.Client
	TokenProvider TokenProvider
	MaxAttempts   int
	BaseDelay     time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

func NewClient(baseURL string, tokenProvider TokenProvider) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		TokenProvider: tokenProvider,
		MaxAttempts:   3,
		BaseDelay:     time.Second,
		sleep:         time.Sleep,
	}
}

// do performs a single request and classifies the outcome into the error
// taxonomy. A non-2xx with a JSON body becomes an HTTPError carrying the
// server message; a non-JSON body becomes a MalformedResponseError.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.TokenProvider != nil {
		if token := c.TokenProvider(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil || env.Message == "" {
			return nil, &MalformedResponseError{StatusCode: resp.StatusCode}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &env, nil
}

// doWithRetry retries network failures and 5xx responses with exponential
// backoff (BaseDelay * 2^attempt). Client errors are returned immediately:
// repeating a doomed request helps nobody.
func (c *Client) doWithRetry(ctx context.Context, method, path string, payload interface{}) (*envelope, error) {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		env, err := c.do(ctx, method, path, payload)
		if err == nil {
			return env, nil
		}
		lastErr = err
		if !IsRetryable(err) || i == attempts-1 {
			break
		}
		c.sleep(c.BaseDelay * (1 << i))
	}
	return nil, lastErr
}

func decodeData(env *envelope, dest interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, dest)
}

// Health probes the backend. A nil error means the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", &HTTPError{StatusCode: http.StatusUnauthorized, Message: "login response carried no token"}
	}
	return env.Token, nil
}

// ORDERS

func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (*Order, error) {
	env, err := c.doWithRetry(ctx, http.MethodPost, "/orders", input)
	if err != nil {
		return nil, err
	}
	var order Order
	if err := decodeData(env, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	order.Origin = OriginRemote
	return &order, nil
}

func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	env, err := c.doWithRetry(ctx, http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := decodeData(env, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse orders: %w", err)
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	_, err := c.doWithRetry(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), map[string]string{"status": status})
	return err
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil)
	return err
}

// MESSAGES

func (c *Client) CreateMessage(ctx context.Context, input MessageInput) (*Message, error) {
	env, err := c.doWithRetry(ctx, http.MethodPost, "/messages", input)
	if err != nil {
		return nil, err
	}
	var message Message
	if err := decodeData(env, &message); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	message.Origin = OriginRemote
	return &message, nil
}

func (c *Client) GetMessages(ctx context.Context) ([]Message, error) {
	env, err := c.doWithRetry(ctx, http.MethodGet, "/messages", nil)
	if err != nil {
		return nil, err
	}
	var messages []Message
	if err := decodeData(env, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, id int64) error {
	_, err := c.doWithRetry(ctx, http.MethodPut, fmt.Sprintf("/messages/%d/read", id), nil)
	return err
}

func (c *Client) MarkAllMessagesRead(ctx context.Context) (int64, error) {
	env, err := c.doWithRetry(ctx, http.MethodPut, "/messages/read/all", nil)
	if err != nil {
		return 0, err
	}
	var result MarkAllResult
	if err := decodeData(env, &result); err != nil {
		return 0, fmt.Errorf("failed to parse mark-all result: %w", err)
	}
	return result.MarkedCount, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/messages/%d", id), nil)
	return err
}

func (c *Client) DeleteAllMessages(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/messages", nil)
	return err
}

// MENU

func (c *Client) GetMenuItems(ctx context.Context) ([]MenuItem, error) {
	env, err := c.doWithRetry(ctx, http.MethodGet, "/menu/items", nil)
	if err != nil {
		return nil, err
	}
	var items []MenuItem
	if err := decodeData(env, &items); err != nil {
		return nil, fmt.Errorf("failed to parse menu items: %w", err)
	}
	return items, nil
}

func (c *Client) GetSpecialItems(ctx context.Context) ([]SpecialItem, error) {
	env, err := c.doWithRetry(ctx, http.MethodGet, "/menu/special", nil)
	if err != nil {
		return nil, err
	}
	var items []SpecialItem
	if err := decodeData(env, &items); err != nil {
		return nil, fmt.Errorf("failed to parse special items: %w", err)
	}
	return items, nil
}
