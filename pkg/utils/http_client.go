package utils

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// Transport-level limits for calls to the prediction backend. The backend may
// cold-start, so the header timeout is generous and there is no client-level
// deadline unless one is configured; callers bound requests with their context.
const (
	defaultResponseHeaderTimeout = 60 * time.Second
	defaultIdleConnTimeout       = 90 * time.Second
	defaultTLSHandshakeTimeout   = 10 * time.Second
	defaultExpectContinueTimeout = 1 * time.Second

	defaultMaxIdleConns        = 64
	defaultMaxIdleConnsPerHost = 16

	defaultDialerTimeout   = 5 * time.Second
	defaultDialerKeepAlive = 30 * time.Second
)

// ClientConfig captures tunables for the HTTP client/transport.
// Zero values are replaced by defaults, except ClientTimeout where zero means none.
type ClientConfig struct {
	ClientTimeout time.Duration

	ResponseHeaderTimeout time.Duration
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int

	DialerTimeout   time.Duration
	DialerKeepAlive time.Duration

	Proxy func(*http.Request) (*url.URL, error) // default http.ProxyFromEnvironment
}

// ClientOption ----- Functional options pattern -----
type ClientOption func(*ClientConfig)

func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.ClientTimeout = d }
}
func WithResponseHeaderTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.ResponseHeaderTimeout = d }
}
func WithTLSHandshakeTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.TLSHandshakeTimeout = d }
}
func WithDialerTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.DialerTimeout = d }
}
func WithMaxIdleConnsPerHost(n int) ClientOption {
	return func(c *ClientConfig) { c.MaxIdleConnsPerHost = n }
}
func WithProxy(p func(*http.Request) (*url.URL, error)) ClientOption {
	return func(c *ClientConfig) { c.Proxy = p }
}

// DefaultClientConfig returns a copy of the defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ResponseHeaderTimeout: defaultResponseHeaderTimeout,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshakeTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
		MaxIdleConns:          defaultMaxIdleConns,
		MaxIdleConnsPerHost:   defaultMaxIdleConnsPerHost,
		DialerTimeout:         defaultDialerTimeout,
		DialerKeepAlive:       defaultDialerKeepAlive,
		Proxy:                 http.ProxyFromEnvironment,
	}
}

// NewHTTPClient builds an *http.Client for the backend with defaults overridden by opts.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	cfg := DefaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sanitizeClientConfig(&cfg)

	tr := &http.Transport{
		Proxy: cfg.Proxy,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialerTimeout,
			KeepAlive: cfg.DialerKeepAlive,
		}).DialContext,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ExpectContinueTimeout: cfg.ExpectContinueTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.ClientTimeout,
	}
}

// sanitizeClientConfig fills zero or negative values with defaults.
func sanitizeClientConfig(c *ClientConfig) {
	if c.ClientTimeout < 0 {
		c.ClientTimeout = 0
	}
	if c.ResponseHeaderTimeout <= 0 {
		c.ResponseHeaderTimeout = defaultResponseHeaderTimeout
	}
	if c.IdleConnTimeout <= 0 {
		c.IdleConnTimeout = defaultIdleConnTimeout
	}
	if c.TLSHandshakeTimeout <= 0 {
		c.TLSHandshakeTimeout = defaultTLSHandshakeTimeout
	}
	if c.ExpectContinueTimeout <= 0 {
		c.ExpectContinueTimeout = defaultExpectContinueTimeout
	}
	if c.DialerTimeout <= 0 {
		c.DialerTimeout = defaultDialerTimeout
	}
	if c.DialerKeepAlive <= 0 {
		c.DialerKeepAlive = defaultDialerKeepAlive
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
	if c.Proxy == nil {
		c.Proxy = http.ProxyFromEnvironment
	}
}
