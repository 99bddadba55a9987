// Package ultrahuman provides a typed client for the Ultrahuman
// partner API's daily metrics endpoint.
package ultrahuman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gobuffalo/envy"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://partner.ultrahuman.com/api/v1"
	dailyMetricsPath = "partner/daily_metrics"

	// APIKeyEnvVar names the environment variable consulted when no
	// key is passed to New.
	APIKeyEnvVar = "ULTRAHUMAN_API_KEY"

	tracerName = "github.com/bueckerlars/ultrahuman-api-client"
)

// Client calls the Ultrahuman partner API. It sets a default
// *http.Client and *http.Transport, which can be customized via
// optional funcs. The API key and base URL are fixed once New
// returns; calls are independent and share only the connection pool,
// so a single Client is safe for concurrent use.
//
// The zero value is not usable; construct with New and release the
// pool with Close when done, typically via defer.
type Client struct {
	apiKey    string
	baseURL   *url.URL
	userAgent string

	httpc     *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	tracer    trace.Tracer
	closeOnce sync.Once
}

// New builds a Client. When no WithAPIKey option is given, the key is
// resolved once from the ULTRAHUMAN_API_KEY environment variable (a
// .env file alongside the process is honored); if it is still absent,
// New fails with ErrMissingAPIKey before any I/O happens.
func New(options ...Option) (*Client, error) {
	baseTransport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		MaxIdleConns: 5,
	}

	client := &Client{
		httpc: &http.Client{
			Transport: baseTransport,
			Timeout:   10 * time.Second,
		},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range options {
		if err := opt(client); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if client.apiKey == "" {
		// Resolved once here; later changes to the environment are
		// not observed by the client.
		envy.Reload()
		client.apiKey = envy.Get(APIKeyEnvVar, "")
	}
	if client.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if client.baseURL == nil {
		u, err := url.Parse(defaultBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing default base url: %w", err)
		}
		client.baseURL = u
	}

	if client.userAgent != "" {
		base := client.httpc.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client.httpc.Transport = userAgent{value: client.userAgent, base: base}
	}

	return client, nil
}

// Close releases the client's idle pooled connections. Calling it more
// than once is a no-op; typical use is defer c.Close() right after New.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.httpc.CloseIdleConnections()
	})
}

// DailyMetrics fetches the metrics for the window selected by q.
// Exactly one of the date or epoch-range selectors must be set;
// violations are reported with ErrInvalidQuery before any request is
// sent. Every call issues one fresh request, with no retries and no
// caching.
func (c *Client) DailyMetrics(ctx context.Context, q Query) (*MetricsData, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "ultrahuman.DailyMetrics",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ultrahuman.query.kind", q.kind())),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "throttled")
			return nil, fmt.Errorf("waiting for throttle: %w", err)
		}
	}

	reqURL := c.baseURL.JoinPath(dailyMetricsPath)
	reqURL.RawQuery = q.values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	// The partner API expects the raw key as the Authorization value,
	// without a Bearer prefix.
	requestID := uuid.NewString()
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("X-Request-ID", requestID)
	span.SetAttributes(attribute.String("ultrahuman.request_id", requestID))

	c.logger.Debug("fetching daily metrics",
		"url", reqURL.Redacted(),
		"request_id", requestID,
	)

	resp, err := c.httpc.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, &APIError{
			Message: fmt.Sprintf("request failed: %s", err),
			Err:     err,
		}
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.statusError(resp)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, apiErr
	}

	data, err := decodeEnvelope(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad response body")
		return nil, err
	}

	return data, nil
}

// statusError builds the typed error for a non-2xx response, pulling
// the message out of the body when one is present.
func (c *Client) statusError(resp *http.Response) *APIError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newAPIError(resp.StatusCode, "unable to read body")
	}
	return newAPIError(resp.StatusCode, errorMessage(body))
}

// errorMessage extracts the upstream error description from an error
// body: the "error" field, then "message", then the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// decodeEnvelope parses a 2xx body. An error field inside a
// well-formed envelope maps through the status taxonomy; everything
// else that goes wrong here is a ParseError.
func decodeEnvelope(body io.Reader) (*MetricsData, error) {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, &ParseError{Message: err.Error(), Err: err}
	}

	if err := validate.Struct(&env); err != nil {
		return nil, &ParseError{Message: validationMessage(err), Err: err}
	}

	if env.Error != "" {
		return nil, newAPIError(env.Status, env.Error)
	}

	if env.Data == nil {
		return nil, &ParseError{Message: "response contains no data"}
	}

	return env.Data, nil
}
