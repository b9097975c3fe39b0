package etherscan

// Client for the api.etherscan.io multiplexed endpoint (module/action query
// parameters). ETH and USDT monitoring share this client, which makes it the
// busiest outbound path, so it carries a rate limiter for the free-tier
// 5 req/s cap and a circuit breaker against error avalanches.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"universal-bot/internal/infra/retry"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const mainnetAPI = "https://api.etherscan.io/api"

var ethRetry = retry.Options{
	MaxRetries: 2,
	BaseDelay:  300 * time.Millisecond,
	MaxDelay:   5 * time.Second,
}

type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "EtherscanAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		baseURL:        mainnetAPI,
		apiKey:         apiKey,
		httpClient:     &http.Client{Timeout: timeout},
		rateLimiter:    rate.NewLimiter(rate.Limit(5), 5),
		circuitBreaker: circuitBreaker,
	}
}

// HasKey reports whether an API key was configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// SetBaseURL overrides the API host, used by tests against httptest servers.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// envelope is the {status, message, result} wrapper every action returns.
// Result is left raw because its shape depends on the action.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (c *Client) call(ctx context.Context, params url.Values) (json.RawMessage, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "?" + params.Encode()

	var result json.RawMessage
	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, retry.Do(ctx, ethRetry, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return &retry.HTTPError{
					StatusCode: resp.StatusCode,
					Body:       body,
					RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
				}
			}

			var env envelope
			if err := json.Unmarshal(body, &env); err != nil {
				return fmt.Errorf("failed to unmarshal response envelope: %w", err)
			}

			// Etherscan reports an empty transaction list as status "0"
			// with "No transactions found"; that is not a failure.
			if env.Status != "1" && env.Message != "No transactions found" {
				return fmt.Errorf("etherscan error: %s", env.Message)
			}

			result = env.Result
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("etherscan %s/%s failed: %w", params.Get("module"), params.Get("action"), err)
	}
	return result, nil
}
