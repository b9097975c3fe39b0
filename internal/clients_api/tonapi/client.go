package tonapi

// Client for the tonapi.io v2 REST API. All endpoints require a bearer token.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"universal-bot/internal/infra/retry"
)

const mainnetAPI = "https://tonapi.io/v2"

var tonRetry = retry.Options{
	MaxRetries: 2,
	BaseDelay:  300 * time.Millisecond,
	MaxDelay:   3 * time.Second,
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    mainnetAPI,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// HasToken reports whether a bearer token was configured. Calls without a
// token are refused before touching the network.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// SetBaseURL overrides the API host, used by tests against httptest servers.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

func (c *Client) doGET(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var respBody []byte
	err := retry.Do(ctx, tonRetry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		respBody = body

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &retry.HTTPError{
				StatusCode: resp.StatusCode,
				Body:       body,
				RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tonapi GET %s failed: %w", path, err)
	}
	return respBody, nil
}
