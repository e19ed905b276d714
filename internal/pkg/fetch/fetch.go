package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/logger"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultRetries  = 3
	DefaultInterval = 200 * time.Millisecond
)

// Client performs read-only GETs against external collaborators.
// Every failure it returns wraps constants.ErrNetworkFetch.
type Client struct {
	http     *http.Client
	retries  uint64
	interval time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

func WithInterval(d time.Duration) Option {
	return func(c *Client) { c.interval = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		retries:  DefaultRetries,
		interval: DefaultInterval,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the body of a 200 response. 4xx answers are not retried.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempt := 0

	err := backoff.Retry(
		func() error {
			attempt++

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequest: %w", err))
			}

			resp, err := c.http.Do(req)
			if err != nil {
				logger.Warnf(ctx, "fetch %s, attempt %d: %s", url, attempt, err.Error())
				return fmt.Errorf("http.Do: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return backoff.Permanent(statusErr)
				}
				logger.Warnf(ctx, "fetch %s, attempt %d: %s", url, attempt, statusErr.Error())
				return statusErr
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("io.ReadAll: %w", err)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(c.interval), c.retries),
			ctx,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %s", constants.ErrNetworkFetch, url, err.Error())
	}

	return body, nil
}
