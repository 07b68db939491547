package utils

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient()
	assert.Zero(t, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultResponseHeaderTimeout, tr.ResponseHeaderTimeout)
	assert.Equal(t, defaultTLSHandshakeTimeout, tr.TLSHandshakeTimeout)
	assert.Equal(t, defaultMaxIdleConnsPerHost, tr.MaxIdleConnsPerHost)
	assert.NotNil(t, tr.Proxy)
}

func TestNewHTTPClient_Options(t *testing.T) {
	c := NewHTTPClient(
		WithClientTimeout(3*time.Second),
		WithResponseHeaderTimeout(5*time.Second),
		WithMaxIdleConnsPerHost(2),
	)
	assert.Equal(t, 3*time.Second, c.Timeout)

	tr := c.Transport.(*http.Transport)
	assert.Equal(t, 5*time.Second, tr.ResponseHeaderTimeout)
	assert.Equal(t, 2, tr.MaxIdleConnsPerHost)
}

func TestSanitizeClientConfig(t *testing.T) {
	cfg := ClientConfig{ClientTimeout: -time.Second, ResponseHeaderTimeout: -1}
	sanitizeClientConfig(&cfg)

	assert.Zero(t, cfg.ClientTimeout)
	assert.Equal(t, defaultResponseHeaderTimeout, cfg.ResponseHeaderTimeout)
	assert.Equal(t, defaultDialerTimeout, cfg.DialerTimeout)
	assert.Equal(t, defaultMaxIdleConns, cfg.MaxIdleConns)
	assert.NotNil(t, cfg.Proxy)
}
