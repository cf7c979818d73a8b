// Package httpclient is the outbound HTTP client used to reach the identity
// provider. It spaces requests out and retries throttled or failed calls.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cesargomez89/fullstack/internal/constants"
)

// Client wraps an http.Client with request spacing and retries.
type Client struct {
	httpClient *http.Client

	retries     int
	backoff     time.Duration
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

type Option func(*Client)

// WithRetries sets how many attempts a request gets in total.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithBackoff sets the base wait between attempts: attempt n waits n times
// the base. A Retry-After answer also delays every later request.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithMinInterval spaces consecutive requests at least d apart.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// New wraps httpClient; nil gets a client with the given timeout.
func New(httpClient *http.Client, timeout time.Duration, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	c := &Client{
		httpClient: httpClient,
		retries:    constants.DefaultRetryCount,
		backoff:    constants.DefaultRetryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req, retrying transport errors and 429/503 answers. Any other
// response, successful or not, is returned as is. req must be replayable:
// a GET or a request with GetBody set.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.waitTurn(ctx); err != nil {
			return nil, err
		}

		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}

		resp, err := c.httpClient.Do(req.WithContext(ctx))
		var retryAfter time.Duration
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
			retryAfter = parseRetryAfter(resp)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("throttled (status %d)", resp.StatusCode)
			if retryAfter > 0 {
				c.pushBack(retryAfter)
			}
		default:
			return resp, nil
		}

		if attempt == c.retries {
			break
		}
		if err := sleep(ctx, time.Duration(attempt)*c.backoff); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries, lastErr)
}

// waitTurn claims the next request slot, sleeping until it is due.
func (c *Client) waitTurn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	now := time.Now()
	next := c.lastRequest.Add(c.minInterval)
	var wait time.Duration
	if now.Before(next) {
		wait = next.Sub(now)
		c.lastRequest = next
	} else {
		c.lastRequest = now
	}
	c.mu.Unlock()

	return sleep(ctx, wait)
}

func (c *Client) pushBack(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := time.Now().Add(d)
	if c.lastRequest.Before(next) {
		c.lastRequest = next
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter reads a Retry-After header given in seconds or as a date.
func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}
