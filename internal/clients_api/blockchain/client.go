package blockchain

// Client for the public blockchain.info API. No credential required.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"universal-bot/internal/infra/retry"
)

const mainnetAPI = "https://blockchain.info"

var btcRetry = retry.Options{
	MaxRetries: 2,
	BaseDelay:  300 * time.Millisecond,
	MaxDelay:   3 * time.Second,
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    mainnetAPI,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetBaseURL overrides the API host, used by tests against httptest servers.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

func (c *Client) doGET(ctx context.Context, path string) ([]byte, error) {
	var respBody []byte
	err := retry.Do(ctx, btcRetry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
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
		return nil, fmt.Errorf("blockchain.info GET %s failed: %w", path, err)
	}
	return respBody, nil
}
