package ultrahuman

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Option defines optional settings for the client.
//
// WithAPIKey sets the partner API key explicitly, bypassing the
// environment lookup.
// WithBaseURL overrides the default partner API endpoint.
// WithLogger injects a custom logger into the client.
// WithUserAgent adds a persistent `User-Agent` header to all
// outgoing requests on the client.
type Option func(*Client) error

func WithAPIKey(key string) Option {
	return func(c *Client) error {
		if key == "" {
			return errors.New("api key must not be empty")
		}
		c.apiKey = key
		return nil
	}
}

func WithBaseURL(rawURL string) Option {
	return func(c *Client) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("parsing base url: %w", err)
		}
		c.baseURL = u
		return nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.httpc = hc
		return nil
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.httpc.Transport = rt
		return nil
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.httpc.Timeout = d
		return nil
	}
}

func WithUserAgent(header string) Option {
	return func(c *Client) error {
		c.userAgent = header
		return nil
	}
}

func WithThrottle(rps, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] must be greater than zero", rps, burst)
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
