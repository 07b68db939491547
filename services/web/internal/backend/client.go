package backend

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
	"time"

	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/utils"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/observability"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/views"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	LoginEndpoint    = "/login/"
	RegisterEndpoint = "/register/"
	PredictEndpoint  = "/predict/"

	maxResponseBytes = 1 << 20
)

// Client is the remote credit-risk backend.
type Client interface {
	Login(ctx context.Context, creds views.Credentials) (views.LoginResponse, error)
	Register(ctx context.Context, reg views.Registration) (views.RegisterResponse, error)
	Predict(ctx context.Context, record views.ApplicantRecord) (views.PredictionResult, error)
	Ping(ctx context.Context) error
}

// Config holds the backend client settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client // default utils.NewHTTPClient()
	Logger     *zap.Logger

	// Outbound throttle; RateLimitPerSec 0 disables it.
	RateLimitPerSec int
	Burst           int
	MaxThrottleWait time.Duration // fail fast when a token is further away than this
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL         string
	http            *http.Client
	logger          *zap.Logger
	limiter         *rate.Limiter
	maxThrottleWait time.Duration
}

// NewClient validates cfg and builds an HTTPClient.
func NewClient(cfg Config) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q: scheme and host required", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = utils.NewHTTPClient()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), burst)
	}

	return &HTTPClient{
		baseURL:         strings.TrimRight(u.String(), "/"),
		http:            httpClient,
		logger:          logger,
		limiter:         limiter,
		maxThrottleWait: cfg.MaxThrottleWait,
	}, nil
}

// BaseURL returns the normalized backend origin.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Login posts credentials. A response is only successful when the status is
// 2xx and the body carries ok=true.
func (c *HTTPClient) Login(ctx context.Context, creds views.Credentials) (views.LoginResponse, error) {
	var out views.LoginResponse
	status, err := c.post(ctx, LoginEndpoint, creds, &out)
	if err != nil {
		return out, err
	}
	if !isSuccess(status) || !out.OK {
		return out, c.rejected(LoginEndpoint, status, out.Detail)
	}
	c.observe(LoginEndpoint, observability.OutcomeOK)
	return out, nil
}

// Register posts a new account. Same success rule as Login.
func (c *HTTPClient) Register(ctx context.Context, reg views.Registration) (views.RegisterResponse, error) {
	var out views.RegisterResponse
	status, err := c.post(ctx, RegisterEndpoint, reg, &out)
	if err != nil {
		return out, err
	}
	if !isSuccess(status) || !out.OK {
		return out, c.rejected(RegisterEndpoint, status, out.Detail)
	}
	c.observe(RegisterEndpoint, observability.OutcomeOK)
	return out, nil
}

// Predict posts one applicant record. Only the HTTP status decides success.
func (c *HTTPClient) Predict(ctx context.Context, record views.ApplicantRecord) (views.PredictionResult, error) {
	var out views.PredictionResult
	status, err := c.post(ctx, PredictEndpoint, record, &out)
	if err != nil {
		return out, err
	}
	if !isSuccess(status) {
		return out, c.rejected(PredictEndpoint, status, out.Detail)
	}
	c.observe(PredictEndpoint, observability.OutcomeOK)
	return out, nil
}

// Ping checks that the backend root answers with a 2xx status.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return &TransportError{Endpoint: "/", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: "/", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	if !isSuccess(resp.StatusCode) {
		return &RejectedError{Endpoint: "/", Status: resp.StatusCode}
	}
	return nil
}

// post sends payload as JSON and decodes the JSON body into out whatever the
// status. A body that does not decode is a transport failure.
func (c *HTTPClient) post(ctx context.Context, endpoint string, payload, out interface{}) (int, error) {
	if err := c.throttle(ctx); err != nil {
		outcome := observability.OutcomeTransport
		if errors.Is(err, ErrThrottled) {
			outcome = observability.OutcomeThrottled
		}
		c.observe(endpoint, outcome)
		return 0, &TransportError{Endpoint: endpoint, Err: err}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.observe(endpoint, observability.OutcomeTransport)
		return 0, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		c.observe(endpoint, observability.OutcomeTransport)
		return 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID := TraceIDFrom(ctx); traceID != "" {
		req.Header.Set(pkg.HeaderTraceId, traceID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	observability.BackendLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.observe(endpoint, observability.OutcomeTransport)
		c.logger.Warn("backend request failed", zap.String(pkg.TraceId, TraceIDFrom(ctx)), zap.String("endpoint", endpoint), zap.Error(err))
		return 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.observe(endpoint, observability.OutcomeTransport)
		return resp.StatusCode, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.observe(endpoint, observability.OutcomeTransport)
		c.logger.Warn("backend response is not json",
			zap.String(pkg.TraceId, TraceIDFrom(ctx)),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return resp.StatusCode, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}

	c.logger.Debug("backend responded",
		zap.String(pkg.TraceId, TraceIDFrom(ctx)),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode))
	return resp.StatusCode, nil
}

// throttle waits for a limiter token unless the wait would exceed maxThrottleWait.
func (c *HTTPClient) throttle(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	r := c.limiter.Reserve()
	if !r.OK() {
		return ErrThrottled
	}
	delay := r.Delay()
	if delay == 0 {
		return nil
	}
	if c.maxThrottleWait > 0 && delay > c.maxThrottleWait {
		r.Cancel()
		return ErrThrottled
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *HTTPClient) rejected(endpoint string, status int, detail views.Detail) error {
	c.observe(endpoint, observability.OutcomeRejected)
	return &RejectedError{Endpoint: endpoint, Status: status, Detail: detail.String()}
}

func (c *HTTPClient) observe(endpoint, outcome string) {
	observability.BackendRequests.WithLabelValues(endpoint, outcome).Inc()
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

type traceKey struct{}

// WithTraceID attaches the request trace ID so it is forwarded to the backend.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// TraceIDFrom returns the trace ID attached by WithTraceID.
func TraceIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(traceKey{}).(string); ok {
		return v
	}
	return ""
}
