package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/client/models"
	"github.com/dmitrijs2005/sensorhub/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent on protected calls.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) (string, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

func (c *HTTPClient) authenticate(ctx context.Context, path, username string, password []byte) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, path, false, credentials{Username: username, Password: string(password)}, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", false, nil, nil)
}

func (c *HTTPClient) AddReading(ctx context.Context, r models.NewReading) (*models.Reading, error) {
	var out models.Reading
	if err := c.do(ctx, http.MethodPost, "/api/readings", true, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReadings returns every reading, or only those of sensorID when it is
// not empty.
func (c *HTTPClient) ListReadings(ctx context.Context, sensorID string) ([]models.Reading, error) {
	path := "/api/readings"
	if sensorID != "" {
		path += "/" + url.PathEscape(sensorID)
	}

	var out []models.Reading
	if err := c.do(ctx, http.MethodGet, path, true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		if tok := c.bearer(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode == http.StatusBadRequest {
		var fields common.ValidationErrors
		if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
			return fields
		}
	}

	msg := resp.Status
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		msg = er.Error
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrorConflict, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("server error: %s", msg)
	}
}
